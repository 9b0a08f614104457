package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageUploadOK(t *testing.T) {
	assert.NoError(t, ValidateImageUpload("image/png", 1024, MaxAvatarSize))
	assert.NoError(t, ValidateImageUpload("image/jpeg", MaxAvatarSize, MaxAvatarSize))
}

func TestValidateImageUploadRejectsNonImage(t *testing.T) {
	err := ValidateImageUpload("application/pdf", 1024, MaxAvatarSize)
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestValidateImageUploadRejectsOversize(t *testing.T) {
	err := ValidateImageUpload("image/png", MaxAvatarSize+1, MaxAvatarSize)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}
