package tree

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxTitleLength is the maximum number of characters in a folder or prompt title.
const MaxTitleLength = 255

// NormalizeTitle trims title and checks it is usable for a node.
func NormalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}
	err := validation.Validate(trimmed,
		validation.Length(1, MaxTitleLength),
		validation.By(singleLine),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTitle, err)
	}
	return trimmed, nil
}

func singleLine(value interface{}) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, "\r\n") {
		return validation.NewError("validation_title_single_line", "must be a single line")
	}
	return nil
}
