package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// Letters, numbers, spaces and common professional punctuation: . ' - / & ( ) , +
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),+#-]+$`)

	// E164-like phone: optional +, 7-15 digits
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

	// YouTube video ids
	videoIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{6,20}$`)
)

// RegisterValidators registers the custom tags used by domain structs. categoryExists backs the
// job_category tag; pass nil to accept any non-empty tag.
func RegisterValidators(v *validator.Validate, categoryExists func(string) bool) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("video_id", ValidVideoID)
	_ = v.RegisterValidation("job_category", func(fl validator.FieldLevel) bool {
		tag := fl.Field().String()
		if tag == "" {
			return false
		}
		if categoryExists == nil {
			return true
		}
		return categoryExists(tag)
	})
}

// New returns a validator with the custom tags registered.
func New(categoryExists func(string) bool) *validator.Validate {
	v := validator.New()
	RegisterValidators(v, categoryExists)
	return v
}

func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return nameRegex.MatchString(val)
}

func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(val)
}

func ValidVideoID(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return videoIDRegex.MatchString(val)
}

// NoEmoji rejects supplementary-plane characters and Unicode symbol categories.
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}
