package apierrors

import (
	"fmt"

	"taskflow/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
)

// JsonErr is the body of every failed request: {"error":{"code":..,"message":..}}.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

type Err struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// WithRequestID returns a copy of e tagged with the request id.
func (e JsonErr) WithRequestID(requestID string) JsonErr {
	e.ErrDetails.RequestID = requestID
	return e
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return JsonErr{ErrDetails: Err{Code: code, Message: GetTransErrorMsg(msgKey, lang)}}
}

// GetTransErrorMsg falls back to English, then to the key itself.
func GetTransErrorMsg(msgKey string, lang string) string {
	if translator.Translator == nil {
		return msgKey
	}

	l := i18n.NewLocalizer(translator.Translator, lang, translator.LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: msgKey})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
