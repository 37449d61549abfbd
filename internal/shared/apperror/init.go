package apperror

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init makes gin's validator report json/form tag names, so messages use the
// names clients send.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			switch name {
			case "-":
				return ""
			case "":
				continue
			}
			return name
		}
		return fld.Name
	})
}
