package services

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rowanlabs/inkwell/pkg/internal/database"
	"github.com/rowanlabs/inkwell/pkg/internal/models"
	"github.com/rowanlabs/inkwell/pkg/internal/status"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

func GetAccountWithID(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		return account, status.FromGorm(err, "account")
	}
	return account, nil
}

func GetAccountWithName(name string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err != nil {
		return account, status.FromGorm(err, "account")
	}
	return account, nil
}

func NewAccount(name, nick, email, password string) (models.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, err
	}

	account := models.Account{
		Name:     name,
		Nick:     nick,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleReader,
	}

	if err := database.C.Create(&account).Error; err != nil {
		return account, status.FromGorm(err, "account")
	}

	return account, nil
}

func SetAccountRole(id uint, role string) (models.Account, error) {
	account, err := GetAccountWithID(id)
	if err != nil {
		return account, err
	}

	account.Role = role
	if err := database.C.Save(&account).Error; err != nil {
		return account, err
	}

	return account, nil
}

// AuthenticateAccount verifies the credentials and issues an access token.
// Lookup failures and password mismatches are indistinguishable to the caller.
func AuthenticateAccount(name, password string) (models.Account, string, error) {
	account, err := GetAccountWithName(name)
	if err != nil {
		return account, "", status.Forbidden("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return account, "", status.Forbidden("invalid credentials")
	}

	token, err := IssueAccountToken(account)
	return account, token, err
}

func IssueAccountToken(account models.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":  strconv.Itoa(int(account.ID)),
		"name": account.Name,
		"role": account.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(viper.GetString("security.token_secret")))
}

// ParseAccountToken returns the account id carried by a valid access token.
func ParseAccountToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, status.Forbidden("unexpected token signing method")
		}
		return []byte(viper.GetString("security.token_secret")), nil
	})
	if err != nil || !token.Valid {
		return 0, status.Forbidden("invalid access token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, status.Forbidden("invalid access token claims")
	}
	subject, err := claims.GetSubject()
	if err != nil {
		return 0, status.Forbidden("access token carries no subject")
	}
	id, err := strconv.Atoi(subject)
	if err != nil {
		return 0, status.Forbidden("access token subject is malformed")
	}

	return uint(id), nil
}
