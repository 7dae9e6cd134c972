package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
)

// errorBody 统一的错误响应体。
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// RespondJSON 输出 JSON 响应。
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError 按错误类别映射 HTTP 状态码后输出。
func RespondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindIntegrity:
		status = http.StatusUnprocessableEntity
	case apperr.KindUnavailable:
		status = http.StatusServiceUnavailable
	}

	var body errorBody
	body.Error.Code = apperr.CodeOf(err)
	if body.Error.Code == "" {
		body.Error.Code = "internal"
	}
	body.Error.Message = err.Error()
	RespondJSON(w, status, body)
}

// DecodeJSON 解析请求体 JSON。
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
