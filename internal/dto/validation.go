package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// creatableKinds are the kinds a client may create; balance_adjustment is a
// historical kind and is never accepted on the wire.
var creatableKinds = map[string]struct{}{
	"movement":   {},
	"recurring":  {},
	"receivable": {},
	"payable":    {},
}

var movementTypes = map[string]struct{}{
	"income":  {},
	"expense": {},
}

// RegisterCustomValidations installs the itemkind and movementtype rules on
// gin's validator engine. Call once during startup, before binding requests.
func RegisterCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("itemkind", func(fl validator.FieldLevel) bool {
		_, ok := creatableKinds[fl.Field().String()]
		return ok
	})
	_ = v.RegisterValidation("movementtype", func(fl validator.FieldLevel) bool {
		_, ok := movementTypes[fl.Field().String()]
		return ok
	})
}
