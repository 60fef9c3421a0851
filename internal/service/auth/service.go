package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/nillow/booking-api/internal/email"
	"github.com/nillow/booking-api/internal/model"
	"github.com/nillow/booking-api/internal/repository"
	"github.com/nillow/booking-api/pkg/auth"
	apperrors "github.com/nillow/booking-api/pkg/errors"
	"github.com/nillow/booking-api/pkg/metrics"
)

const (
	codeTTL     = 10 * time.Minute
	maxAttempts = 5
)

// Service implements passwordless login: a short-lived one-time code is
// hashed into the code store, and a successful validation exchanges it
// for a JWT pair. Unknown phones get a fresh business record so the
// onboarding flow can pick up right after login.
type Service struct {
	businessRepo repository.BusinessRepository
	codes        CodeStore
	jwt          auth.JWTService
	mailer       email.Service
	metrics      *metrics.Metrics
}

func NewService(businessRepo repository.BusinessRepository, codes CodeStore, jwt auth.JWTService, mailer email.Service, m *metrics.Metrics) *Service {
	return &Service{
		businessRepo: businessRepo,
		codes:        codes,
		jwt:          jwt,
		mailer:       mailer,
		metrics:      m,
	}
}

func (s *Service) SendToken(ctx context.Context, req *model.SendTokenRequest) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash code: %w", err)
	}

	if err := s.codes.Put(ctx, req.Phone, string(hash), codeTTL); err != nil {
		return err
	}
	if err := s.codes.ResetAttempts(ctx, req.Phone); err != nil {
		log.Warn().Err(err).Msg("failed to reset code attempts")
	}

	if req.Email != "" && s.mailer != nil {
		if err := s.mailer.SendLoginCode(ctx, req.Email, code); err != nil {
			return apperrors.Internal("failed to deliver login code", err)
		}
	} else {
		// SMS delivery is handled by an external gateway in production;
		// without it the code only lands in the debug log.
		log.Debug().Str("phone", req.Phone).Str("code", code).Msg("login code issued")
	}

	if s.metrics != nil {
		s.metrics.OTPCodesSent.Inc()
	}
	return nil
}

func (s *Service) ValidateToken(ctx context.Context, req *model.ValidateTokenRequest) (*model.TokenResponse, error) {
	attempts, err := s.codes.IncrAttempts(ctx, req.Phone, codeTTL)
	if err != nil {
		return nil, err
	}
	if attempts > maxAttempts {
		s.countValidation("locked")
		return nil, apperrors.Unauthorized("too many attempts, request a new code", nil)
	}

	hash, err := s.codes.Get(ctx, req.Phone)
	if errors.Is(err, ErrCodeNotFound) {
		s.countValidation("expired")
		return nil, apperrors.Unauthorized("code expired or not requested", nil)
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Code)) != nil {
		s.countValidation("invalid")
		return nil, apperrors.Unauthorized("invalid code", nil)
	}

	if err := s.codes.Delete(ctx, req.Phone); err != nil {
		log.Warn().Err(err).Msg("failed to delete consumed code")
	}
	if err := s.codes.ResetAttempts(ctx, req.Phone); err != nil {
		log.Warn().Err(err).Msg("failed to reset code attempts")
	}

	business, err := s.businessRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrNotFound {
			return nil, err
		}
		business, err = s.registerBusiness(ctx, req.Phone)
		if err != nil {
			return nil, err
		}
	}

	accessToken, expiresAt, err := s.jwt.GenerateAccessToken(business.ID, business.Phone)
	if err != nil {
		return nil, apperrors.Internal("failed to issue token", err)
	}
	refreshToken, err := s.jwt.GenerateRefreshToken(business.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to issue refresh token", err)
	}

	s.countValidation("success")
	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	businessID, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token", err)
	}

	business, err := s.businessRepo.Get(ctx, businessID)
	if err != nil {
		return nil, err
	}

	accessToken, expiresAt, err := s.jwt.GenerateAccessToken(business.ID, business.Phone)
	if err != nil {
		return nil, apperrors.Internal("failed to issue token", err)
	}
	newRefresh, err := s.jwt.GenerateRefreshToken(business.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to issue refresh token", err)
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) CheckPhoneExists(ctx context.Context, phone string) (bool, error) {
	return s.businessRepo.PhoneExists(ctx, phone)
}

func (s *Service) CheckUsernameExists(ctx context.Context, username string) (bool, error) {
	return s.businessRepo.UsernameExists(ctx, username)
}

func (s *Service) registerBusiness(ctx context.Context, phone string) (*model.Business, error) {
	business := model.NewBusiness(phone)
	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}
	log.Info().Str("business_id", business.ID.String()).Msg("registered new business")
	return business, nil
}

func (s *Service) countValidation(result string) {
	if s.metrics != nil {
		s.metrics.OTPValidations.WithLabelValues(result).Inc()
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
