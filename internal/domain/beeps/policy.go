package beeps

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// TextPolicy caps the length of beep text, counted in runes.
// A MaxLength of zero or less disables the cap.
type TextPolicy struct {
	MaxLength int

	validate *validator.Validate
}

func NewTextPolicy(maxLength int) TextPolicy {
	return TextPolicy{
		MaxLength: maxLength,
		validate:  validator.New(),
	}
}

// Check returns ErrTextTooLong when text exceeds the cap. Empty text is allowed.
func (p TextPolicy) Check(text string) error {
	if p.MaxLength <= 0 {
		return nil
	}
	v := p.validate
	if v == nil {
		v = validator.New()
	}
	if err := v.Var(text, "max="+strconv.Itoa(p.MaxLength)); err != nil {
		return fmt.Errorf("%w: limit is %d characters", ErrTextTooLong, p.MaxLength)
	}
	return nil
}
