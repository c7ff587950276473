// file: internals/helpers/validation.go
package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrsToMap mengubah validator.ValidationErrors menjadi map
// field → daftar tag yang gagal, untuk dikirim via JsonValidationError.
func ValidationErrsToMap(err error) map[string][]string {
	out := map[string][]string{}
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			key := strings.ToLower(fe.Field())
			out[key] = append(out[key], fe.Tag())
		}
	}
	return out
}
