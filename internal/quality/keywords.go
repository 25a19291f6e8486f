package quality

// politicalKeywords is the fixed blocklist behind the skipPolitical flag.
// Matching is plain case-insensitive substring matching, which over-filters
// on purpose: a false positive costs one candidate post, a false negative
// puts political content in a customer's digest.
var politicalKeywords = []string{
	"trump",
	"biden",
	"obama",
	"kamala",
	"desantis",
	"maga",
	"democrat",
	"republican",
	"gop",
	"libs",
	"leftist",
	"right-wing",
	"left-wing",
	"election",
	"ballot",
	"voter",
	"congress",
	"senate",
	"white house",
	"supreme court",
	"impeach",
	"abortion",
	"border crisis",
	"immigration",
	"gun control",
	"second amendment",
	"socialism",
	"communis",
	"fascis",
	"woke",
	"culture war",
	"israel",
	"palestine",
	"gaza",
	"putin",
	"ukraine",
	"nato",
}
