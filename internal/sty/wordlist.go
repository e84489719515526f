package sty

// wordlist maps one checksum byte to one short English word. The list
// is fixed: changing it would change every rendered mnemonic.
var wordlist = [256]string{
	"abacus", "acid", "actor", "adam", "admiral", "agenda", "alamo", "albert",
	"alcohol", "alex", "alien", "almond", "alpha", "amber", "amigo", "anchor",
	"andrea", "animal", "antenna", "apollo", "april", "arctic", "arena", "aroma",
	"arrow", "aspen", "atlas", "audio", "august", "aurora", "axiom", "aztec",
	"bagel", "baker", "balance", "ballet", "bambino", "banana", "banjo", "barcode",
	"baron", "basil", "beatles", "begin", "benny", "berlin", "bicycle", "bikini",
	"binary", "bingo", "biology", "bishop", "bison", "blitz", "blonde", "bonanza",
	"bonus", "boston", "bravo", "brazil", "bronze", "bruno", "brush", "buffalo",
	"cabaret", "cactus", "cadet", "cairo", "camera", "campus", "canada", "canary",
	"candid", "cannon", "canvas", "canyon", "capital", "caramel", "carbon", "cargo",
	"carlo", "carol", "carpet", "cartel", "casino", "castle", "castro", "catalog",
	"caviar", "cecilia", "cement", "center", "ceramic", "chamber", "chance", "change",
	"chaos", "charlie", "charm", "chess", "chicago", "chief", "china", "cigar",
	"cinema", "citizen", "city", "clara", "classic", "claudia", "clean", "client",
	"clock", "cobra", "coconut", "cola", "collect", "colombo", "colony", "color",
	"combat", "comedy", "comet", "command", "compact", "company", "complex", "concept",
	"concert", "connect", "consul", "contact", "context", "contour", "control", "convert",
	"copper", "corner", "corona", "cosmos", "couple", "courage", "cowboy", "craft",
	"crash", "credit", "cricket", "critic", "crown", "crystal", "cuba", "culture",
	"dallas", "dance", "daniel", "danube", "david", "decade", "decimal", "delta",
	"deluxe", "denver", "desert", "detect", "diagram", "diamond", "diana", "diego",
	"diesel", "diet", "digital", "dilemma", "dinner", "diploma", "direct", "disco",
	"doctor", "dollar", "dolphin", "domain", "domino", "donald", "dragon", "drama",
	"dublin", "duet", "dynamic", "dynasty", "eagle", "echo", "eclipse", "ecology",
	"economy", "edgar", "editor", "edward", "effect", "egypt", "elastic", "elegant",
	"element", "elite", "elvis", "email", "empire", "energy", "engine", "english",
	"episode", "equator", "escape", "escort", "ethnic", "europe", "everest", "evident",
	"exact", "example", "exhibit", "exile", "exit", "exotic", "export", "express",
	"fabric", "factor", "falcon", "family", "fantasy", "fashion", "fiber", "fiction",
	"fidel", "fiesta", "figure", "film", "filter", "final", "finance", "finish",
	"finland", "first", "flag", "flash", "florida", "flower", "fluid", "flute",
	"focus", "forest", "formal", "formula", "fortune", "forum", "fragile", "france",
}
