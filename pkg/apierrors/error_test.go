package apierrors_test

import (
	"os"
	"testing"

	"taskflow/pkg/apierrors"
	"taskflow/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMain(m *testing.M) {
	translator.Translator = i18n.NewBundle(language.English)
	if err := translator.Translator.AddMessages(language.English, &i18n.Message{
		ID:    apierrors.MsgTaskNotFound,
		Other: "Task not found",
	}); err != nil {
		os.Exit(1)
	}
	if err := translator.Translator.AddMessages(language.French, &i18n.Message{
		ID:    apierrors.MsgTaskNotFound,
		Other: "Tâche introuvable",
	}); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func TestCreateError_ReturnsJsonErr(t *testing.T) {
	err := apierrors.CreateError(404, apierrors.MsgTaskNotFound, "en")
	assert.Equal(t, 404, err.ErrDetails.Code)
	assert.Equal(t, "Task not found", err.ErrDetails.Message)
	assert.Empty(t, err.ErrDetails.RequestID)
}

func TestGetTransErrorMsg_UsesRequestedLanguage(t *testing.T) {
	assert.Equal(t, "Tâche introuvable", apierrors.GetTransErrorMsg(apierrors.MsgTaskNotFound, "fr"))
}

func TestGetTransErrorMsg_FallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "Task not found", apierrors.GetTransErrorMsg(apierrors.MsgTaskNotFound, "de"))
}

func TestGetTransErrorMsg_FallbackToKey(t *testing.T) {
	assert.Equal(t, "unknown_key", apierrors.GetTransErrorMsg("unknown_key", "en"))
}

func TestJsonErr_WithRequestID(t *testing.T) {
	err := apierrors.CreateError(500, apierrors.MsgTaskNotFound, "en").WithRequestID("req-1")
	assert.Equal(t, "req-1", err.ErrDetails.RequestID)
	assert.Equal(t, "Code: 500, Message: Task not found", err.Error())
}
