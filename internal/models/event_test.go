package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventConstructors(t *testing.T) {
	ident := Identity{FirstName: "Omar", Username: "omar"}

	contact := NewContactEvent(10, ident)
	assert.Equal(t, EventLogin, contact.Kind)
	assert.Equal(t, int64(10), contact.UserID)
	assert.NotNil(t, contact.Identity)
	assert.Equal(t, "omar", contact.Identity.Username)

	login := NewLoginEvent(11)
	assert.Equal(t, EventLogin, login.Kind)
	assert.Nil(t, login.Identity)

	assert.Equal(t, EventDownload, NewDownloadEvent(12).Kind)
	assert.Equal(t, EventYouTube, NewYouTubeEvent(13).Kind)
	assert.Equal(t, EventSnapchat, NewSnapchatEvent(14).Kind)
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "login", EventLogin.String())
	assert.Equal(t, "download", EventDownload.String())
	assert.Equal(t, "youtube", EventYouTube.String())
	assert.Equal(t, "snapchat", EventSnapchat.String())
}
