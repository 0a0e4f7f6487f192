package services

import (
	"fmt"

	"github.com/inkroot/inkroot/pkg/internal/auth"
	"github.com/inkroot/inkroot/pkg/internal/database"
	"github.com/inkroot/inkroot/pkg/internal/models"
)

func GetAccountWithID(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		return account, fmt.Errorf("unable to get account by id: %v", err)
	}
	return account, nil
}

// LoadAccountFromClaims resolves the local mirror of an externally
// authenticated user, provisioning it on first sight. The token subject is
// the provider-side username.
func LoadAccountFromClaims(claims auth.Claims) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("username = ?", claims.Subject).First(&account).Error; err == nil {
		return account, nil
	}

	account = models.Account{
		Username:   claims.Subject,
		Email:      claims.Email,
		Fullname:   claims.Fullname,
		ProfileImg: claims.ProfileImg,
	}
	if err := database.C.Create(&account).Error; err != nil {
		return account, fmt.Errorf("unable to provision account: %v", err)
	}

	return account, nil
}
