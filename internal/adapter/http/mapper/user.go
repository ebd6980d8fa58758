package mapper

import (
	"time"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/core/domain"
)

func ToUserItem(principal domain.Principal) dto.UserItem {
	item := dto.UserItem{
		ID:        principal.ID,
		Username:  principal.Username,
		Email:     principal.Email,
		Name:      principal.Name,
		Role:      string(principal.Role),
		IsActive:  principal.IsActive,
		CreatedAt: principal.CreatedAt.Format(time.RFC3339),
	}

	if principal.ManagerID != nil {
		value := *principal.ManagerID
		item.ManagerID = &value
	}

	return item
}

func ToProfileResponse(profile domain.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		UserItem:    ToUserItem(profile.Principal),
		ManagerName: profile.ManagerName,
	}
}

func ToTokenResponse(token domain.AccessToken) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
