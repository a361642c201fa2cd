package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"pms/internal/core"
	cErr "pms/internal/pkg/error"
	"pms/internal/pkg/request"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 輸出格式化的 validator error（欄位 json 名/型別/規則列表）
func ValidationErrorResponse(obj any, err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		var b strings.Builder
		b.WriteString("Validation error:\n")
		for _, fe := range errs {
			field := jsonFieldName(obj, fe.StructField())
			ftype := fieldType(obj, fe.StructField())
			format := getFieldFormat(obj, fe.StructField())
			b.WriteString(fmt.Sprintf(" - Field \"%s\" (type: %s) failed the '%s' validation (rules: %v)\n",
				field, ftype, fe.Tag(), format))
		}
		return b.String()
	}
	return fmt.Sprintf("Validation error: %s", err.Error())
}

func structField(obj any, name string) (reflect.StructField, bool) {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}
	return t.FieldByName(name)
}

func jsonFieldName(obj any, name string) string {
	if f, ok := structField(obj, name); ok {
		for _, key := range []string{"json", "form"} {
			if tag := f.Tag.Get(key); tag != "" && tag != "-" {
				return strings.Split(tag, ",")[0]
			}
		}
	}
	return name
}

func fieldType(obj any, name string) string {
	if f, ok := structField(obj, name); ok {
		return f.Type.Name()
	}
	return ""
}

func getFieldFormat(obj any, name string) []string {
	if f, ok := structField(obj, name); ok {
		if tag := f.Tag.Get("binding"); tag != "" {
			return strings.Split(tag, ",")
		}
	}
	return nil
}

func ParseObjectID(c *gin.Context, key string) (id primitive.ObjectID, cause error, responseErr error) {
	id, err := primitive.ObjectIDFromHex(c.Param(key))
	if err != nil {
		return primitive.NilObjectID, err, cErr.ValidatePathParamsErr("invalid " + key)
	}
	return id, nil, nil
}

// BindAndValidate JSON body；DTO 實作 request.Validator 時使用自訂訊息
func BindAndValidate(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindJSON(req); err != nil {
		return err, validationError(req, err, cErr.ValidateErr)
	}
	return nil, nil
}

// BindQuery query string 版本
func BindQuery(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindQuery(req); err != nil {
		return err, validationError(req, err, cErr.ValidateQueryErr)
	}
	return nil, nil
}

func validationError(req any, err error, build func(string) *cErr.Error) *cErr.Error {
	if _, ok := req.(request.Validator); ok {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			custom := request.GetError(req, err)
			return build(custom.ErrorDesc())
		}
	}
	return build(ValidationErrorResponse(req, err))
}

// ===== Role =====
func IsValidRole(role string) bool {
	for _, v := range core.Roles {
		if core.Role(role) == v {
			return true
		}
	}
	return false
}

// ===== RentStatus =====
func IsValidRentStatus(status string) bool {
	return core.RentStatus(status).Valid()
}
