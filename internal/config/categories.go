package config

// CategoryWeights orders help sections and the generated README. Lower
// weights sort first.
var CategoryWeights = map[string]int{
	"🕯️ Information": 0,
	"🧰 Utilities":    10,
	"🎲 Games":        20,
	"🐾 Animals":      30,
	"🎨 Roles":        40,
	"📦 Channels":     50,
	"🛡️ Moderation":  60,
	"⚙️ Settings":    70,
}
