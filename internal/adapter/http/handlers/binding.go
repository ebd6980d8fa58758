package handlers

import (
	"encoding/json"

	"taskflow/internal/adapter/http/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// bindJSON binds and validates the body into obj and also returns the raw
// fields, so builders can tell an absent field from an explicit null.
func bindJSON(c *gin.Context, obj any) (map[string]json.RawMessage, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, err
	}

	raw, err := validation.DecodeRaw(body)
	if err != nil {
		return nil, err
	}

	if err := binding.JSON.BindBody(body, obj); err != nil {
		return nil, err
	}
	return raw, nil
}
