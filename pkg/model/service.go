package model

import (
	"fmt"
	"strings"

	"github.com/mini-maxit/acick/pkg/constants"
	customErr "github.com/mini-maxit/acick/pkg/errors"
)

type ServiceKind string

const (
	ServiceAtcoder ServiceKind = constants.DefaultServiceID
)

var serviceKinds = []ServiceKind{ServiceAtcoder}

func ParseServiceKind(s string) (ServiceKind, error) {
	for _, k := range serviceKinds {
		if string(k) == strings.ToLower(s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %s", customErr.ErrUnknownService, s)
}

func (k ServiceKind) String() string {
	return string(k)
}

// UsernameEnv returns the name of the env variable holding the username for the service.
func (k ServiceKind) UsernameEnv() string {
	return fmt.Sprintf(constants.EnvUsernameFormat, strings.ToUpper(string(k)))
}

func (k ServiceKind) PasswordEnv() string {
	return fmt.Sprintf(constants.EnvPasswordFormat, strings.ToUpper(string(k)))
}

type Service struct {
	ID ServiceKind `yaml:"id"`
}

func NewService(id ServiceKind) Service {
	return Service{ID: id}
}
