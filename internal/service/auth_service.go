package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/config"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/model"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Token lifetimes per flow.
const (
	verificacionTTL = 24 * time.Hour
	resetTTL        = 1 * time.Hour
)

// Mailer is the delivery dependency; infra.Mailer satisfies it.
type Mailer interface {
	Send(to, subject, body, attachPath string) error
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Resend(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, rawToken string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}

type authService struct {
	repo     repository.UsuarioRepository
	mailLogs repository.MailLogRepository
	mailer   Mailer
	cfg      *config.Config
	now      func() time.Time
}

func NewAuthService(repo repository.UsuarioRepository, mailLogs repository.MailLogRepository, mailer Mailer, cfg *config.Config) AuthService {
	return &authService{repo: repo, mailLogs: mailLogs, mailer: mailer, cfg: cfg, now: time.Now}
}

// hashToken is the only form in which opaque tokens are persisted.
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func newRawToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ── Register ──────────────────────────────────────────────────────────────────

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.HasSuffix(email, s.cfg.MailDomain) {
		return nil, validacion("el email debe pertenecer al dominio institucional %s", s.cfg.MailDomain)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, validacion("el email ya esta registrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Nombre:       req.Nombre,
		Email:        email,
		PasswordHash: string(hash),
		Rol:          "consulta",
		Activo:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Send failure is swallowed: registration still succeeds, the user can
	// ask for a resend.
	s.issueAndSendToken(ctx, user, model.TokenVerificacionEmail)

	return &dto.UsuarioResponse{
		ID: user.ID, Nombre: user.Nombre, Email: user.Email,
		Rol: user.Rol, Verificado: user.Verificado,
	}, nil
}

// issueAndSendToken invalidates outstanding tokens of the same tipo, stores a
// fresh hash, and emails the raw value. Every attempt gets a mail_logs row.
func (s *authService) issueAndSendToken(ctx context.Context, user *model.Usuario, tipo string) {
	raw, err := newRawToken()
	if err != nil {
		log.Error().Err(err).Msg("auth: token generation failed")
		return
	}

	ttl := verificacionTTL
	asunto := "Verifica tu cuenta del pañol"
	link := fmt.Sprintf("%s/api/auth/verify/%s", s.cfg.BackendURL, raw)
	cuerpo := "Hola %s:\n\nPara activar tu cuenta segui este enlace (valido por 24 horas):\n%s\n"
	if tipo == model.TokenResetPassword {
		ttl = resetTTL
		asunto = "Restablecer tu contraseña del pañol"
		link = fmt.Sprintf("%s/reset/%s", s.cfg.FrontendURL, raw)
		cuerpo = "Hola %s:\n\nPara restablecer tu contraseña segui este enlace (valido por 1 hora):\n%s\n"
	}

	if err := s.repo.InvalidateTokens(ctx, user.ID, tipo); err != nil {
		log.Error().Err(err).Msg("auth: invalidate tokens failed")
		return
	}
	if err := s.repo.CreateToken(ctx, &model.TokenVerificacion{
		UsuarioID: user.ID,
		Tipo:      tipo,
		TokenHash: hashToken(raw),
		ExpiraEn:  s.now().Add(ttl),
	}); err != nil {
		log.Error().Err(err).Msg("auth: store token failed")
		return
	}

	body := fmt.Sprintf(cuerpo, user.Nombre, link)
	s.sendLogged(ctx, user.Email, asunto, body)
}

// sendLogged delivers an email and writes the unconditional mail_logs row.
func (s *authService) sendLogged(ctx context.Context, to, asunto, body string) {
	estado, respuesta := model.MailEnviado, "ok"
	if err := s.mailer.Send(to, asunto, body, ""); err != nil {
		estado, respuesta = model.MailError, err.Error()
		log.Warn().Err(err).Str("to", to).Msg("auth: mail delivery failed")
	}
	if err := s.mailLogs.Create(ctx, &model.MailLog{
		Destinatario: to, Asunto: asunto, Estado: estado, Respuesta: respuesta,
	}); err != nil {
		log.Error().Err(err).Msg("auth: mail log write failed")
	}
}

// ── Login ─────────────────────────────────────────────────────────────────────

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrCredenciales
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredenciales
	}
	if !user.Verificado {
		return nil, ErrNoVerificado
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"rol":     user.Rol,
		"exp":     s.now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":     s.now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User: dto.UsuarioResponse{
			ID: user.ID, Nombre: user.Nombre, Email: user.Email,
			Rol: user.Rol, Verificado: user.Verificado,
		},
	}, nil
}

// ── Verification / reset flows ────────────────────────────────────────────────
// Lookups go by hash only. "Hash not found" and "found but expired" are
// distinct user-facing states (ErrTokenInvalido vs ErrTokenExpirado).

func (s *authService) Resend(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return ErrNoEncontrado
	}
	if user.Verificado {
		return validacion("el email ya fue verificado")
	}
	s.issueAndSendToken(ctx, user, model.TokenVerificacionEmail)
	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, rawToken string) error {
	t, err := s.lookupToken(ctx, rawToken, model.TokenVerificacionEmail)
	if err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, t.UsuarioID)
	if err != nil {
		return ErrTokenInvalido
	}
	user.Verificado = true
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	return s.repo.MarkTokenUsado(ctx, t.ID)
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Do not reveal whether the address exists
		return nil
	}
	if err != nil {
		return err
	}
	s.issueAndSendToken(ctx, user, model.TokenResetPassword)
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	t, err := s.lookupToken(ctx, rawToken, model.TokenResetPassword)
	if err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, t.UsuarioID)
	if err != nil {
		return ErrTokenInvalido
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	return s.repo.MarkTokenUsado(ctx, t.ID)
}

func (s *authService) lookupToken(ctx context.Context, rawToken, tipo string) (*model.TokenVerificacion, error) {
	t, err := s.repo.FindTokenByHash(ctx, hashToken(rawToken))
	if err != nil || t.Tipo != tipo {
		return nil, ErrTokenInvalido
	}
	if s.now().After(t.ExpiraEn) {
		return nil, ErrTokenExpirado
	}
	return t, nil
}
