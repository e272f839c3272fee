package service_simple_auth

import (
	"errors"
	"testing"
	"time"

	"github.com/humanbelnik/flickswipe/internal/service/auth/simple/mocks"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type SimpleAuthUnitSuite struct {
	suite.Suite
}

func (s *SimpleAuthUnitSuite) TestAuth(t provider.T) {
	testCases := []struct {
		name          string
		code          string
		setupMocks    func(cache *mocks.SessionCache)
		expectedError error
	}{
		{
			name: "Should issue token for right code",
			code: "secret",
			setupMocks: func(cache *mocks.SessionCache) {
				cache.On("Set", mock.AnythingOfType("string"), "active", 5*time.Minute).Return(nil).Once()
			},
		},
		{
			name:          "Should refuse wrong code",
			code:          "guess",
			setupMocks:    func(cache *mocks.SessionCache) {},
			expectedError: ErrWrongCode,
		},
		{
			name: "Should report cache failure",
			code: "secret",
			setupMocks: func(cache *mocks.SessionCache) {
				cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("down")).Once()
			},
			expectedError: ErrInternal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			cache := mocks.NewSessionCache(t)
			tc.setupMocks(cache)
			service := New("secret", cache, 5*time.Minute)

			token, err := service.Auth(tc.code)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Empty(t, token)
				return
			}
			assert.NoError(t, err)
			assert.NotEmpty(t, token)
		})
	}
}

func (s *SimpleAuthUnitSuite) TestIsValid(t provider.T) {
	t.Run("Should accept active token", func(t provider.T) {
		cache := mocks.NewSessionCache(t)
		cache.On("Get", "tok").Return("active", nil).Once()

		ok, err := New("", cache, 0).IsValid("tok")

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Should refuse expired token", func(t provider.T) {
		cache := mocks.NewSessionCache(t)
		cache.On("Get", "tok").Return("", nil).Once()

		ok, err := New("", cache, 0).IsValid("tok")

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should refuse empty token without lookup", func(t provider.T) {
		ok, err := New("", mocks.NewSessionCache(t), 0).IsValid("")

		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func (s *SimpleAuthUnitSuite) TestRevoke(t provider.T) {
	cache := mocks.NewSessionCache(t)
	cache.On("Delete", "tok").Return(nil).Once()

	assert.NoError(t, New("", cache, 0).Revoke("tok"))
}

func TestSimpleAuthUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(SimpleAuthUnitSuite))
}
