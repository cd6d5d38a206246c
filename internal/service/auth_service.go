package service

import (
	"context"
	"fmt"
	"time"

	"case-governance-be/internal/dto"
	"case-governance-be/internal/repository/specification"
	"case-governance-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	jwtSecret  string
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret string) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		jwtSecret:  jwtSecret,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	clinician, err := uow.ClinicianRepository().FindOne(ctx, specification.Filter("email", req.Email))
	if err != nil {
		return nil, err
	}
	if clinician == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(clinician.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"clinician_id": clinician.Id.String(),
		"email":        clinician.Email,
		"exp":          time.Now().Add(24 * time.Hour).Unix(),
		"iat":          time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.LoginResponse{
		Token:    signed,
		FullName: clinician.FullName,
	}, nil
}
