// Package defaults defines the built-in clip set that every new board
// starts with. Built-in clips are never uploaded, never deleted from remote
// storage, and are excluded from quota accounting.
package defaults

import "soundeck/internal/types"

type builtin struct {
	id     string
	source string
	emoji  string
	titles map[string]string
}

var builtins = []builtin{
	{
		id:     "default-airhorn",
		source: "builtin/airhorn.mp3",
		emoji:  "📣",
		titles: map[string]string{"en": "Airhorn", "es": "Bocina", "ja": "エアホーン"},
	},
	{
		id:     "default-applause",
		source: "builtin/applause.mp3",
		emoji:  "👏",
		titles: map[string]string{"en": "Applause", "es": "Aplausos", "ja": "拍手"},
	},
	{
		id:     "default-drumroll",
		source: "builtin/drumroll.mp3",
		emoji:  "🥁",
		titles: map[string]string{"en": "Drumroll", "es": "Redoble", "ja": "ドラムロール"},
	},
	{
		id:     "default-laugh",
		source: "builtin/laugh.mp3",
		emoji:  "😂",
		titles: map[string]string{"en": "Laugh Track", "es": "Risas", "ja": "笑い声"},
	},
	{
		id:     "default-sadtrombone",
		source: "builtin/sadtrombone.mp3",
		emoji:  "🎺",
		titles: map[string]string{"en": "Sad Trombone", "es": "Trombón Triste", "ja": "悲しいトロンボーン"},
	},
	{
		id:     "default-ding",
		source: "builtin/ding.mp3",
		emoji:  "🔔",
		titles: map[string]string{"en": "Ding", "es": "Campanilla", "ja": "チーン"},
	},
}

// Clips returns the built-in clip set titled for the given language.
// Unknown languages fall back to English.
func Clips(lang string) []types.Clip {
	out := make([]types.Clip, 0, len(builtins))
	for _, b := range builtins {
		title, ok := b.titles[lang]
		if !ok {
			title = b.titles["en"]
		}
		out = append(out, types.Clip{
			ID:        b.id,
			Title:     title,
			SourceRef: b.source,
			Volume:    0.5,
			Emoji:     b.emoji,
			IsBuiltIn: true,
		})
	}
	return out
}
