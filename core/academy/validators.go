package academy

import (
	"github.com/go-playground/validator/v10"

	"github.com/latinacademy/academia/core"
)

var (
	labTypeTag  = "labtype"
	labTypeText = "invalid lab type"
)

func init() {
	_ = core.Validate.RegisterValidation(labTypeTag, labTypeValidation)
	core.RegisterCustomTranslation(labTypeTag, labTypeText)
}

// labTypeValidation checks that a lab type is one of the known kinds.
func labTypeValidation(fl validator.FieldLevel) bool {
	switch LabType(fl.Field().String()) {
	case LabTypeComputer, LabTypeLanguage, LabTypeGeneral:
		return true
	}
	return false
}
