package bot

import (
	"fmt"
	"unicode/utf8"

	"character-search/internal/model"
)

func formatCharacterCaption(char model.Character) string {
	caption := fmt.Sprintf("%s\nStatus: %s\nSpecies: %s\nGender: %s",
		char.Name, char.Status, char.Species, char.Gender)
	if len(caption) > telegramCaptionLimit {
		cut := telegramCaptionLimit - 3
		for cut > 0 && !utf8.RuneStart(caption[cut]) {
			cut--
		}
		return caption[:cut] + "..."
	}
	return caption
}
