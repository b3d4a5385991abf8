package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/metrics"
	"github.com/MKhiriev/menu-predictor/internal/mlshell"
	"github.com/MKhiriev/menu-predictor/internal/store"
	"github.com/MKhiriev/menu-predictor/internal/utils"
	"github.com/MKhiriev/menu-predictor/internal/validators"
	"github.com/MKhiriev/menu-predictor/models"
)

// Page flags raised by the account workflows in addition to the
// "no_<field>" and "incorrect_<field>" flags of validators.CheckContent.
const (
	FlagIncorrectCredentials = "incorrect_username_or_password"
	FlagLoginExists          = "login_exists"
	FlagEmailExists          = "email_exists"
	FlagIncorrectEmail       = "incorrect_email"
	FlagIncorrectAnswer      = "incorrect_answer"
	FlagPasswordsMismatch    = "not_match_passwords"
	FlagRestoreOutOfOrder    = "restore_out_of_order"
	FlagConfirmed            = "confirmed"
)

var (
	loginFields = []string{models.FieldUsername, models.FieldPassword}

	registerShortFields = []string{
		models.FieldFirstName, models.FieldLastName, models.FieldEmail,
		models.FieldPassword, models.FieldLogin, models.FieldPasswordDouble,
	}
	registerLongFields = []string{models.FieldQuestion, models.FieldAnswer}

	// RegisterEchoFields are kept in the session so a failed registration
	// form can be shown again. Passwords and the answer are never echoed.
	RegisterEchoFields = []string{
		models.FieldFirstName, models.FieldLastName, models.FieldEmail,
		models.FieldLogin, models.FieldQuestion,
	}

	newPasswordFields = []string{models.FieldPassword, models.FieldPasswordDouble}
)

// accountService is the concrete implementation of AccountService.
type accountService struct {
	userRepository     store.UserRepository
	settingsRepository store.SettingsRepository

	// passwordCost is the bcrypt cost of new password hashes.
	passwordCost int

	// defaultModel is the artifact key every new account starts with.
	defaultModel string

	logger *logger.Logger
}

// NewAccountService constructs an AccountService over the user and settings
// repositories.
func NewAccountService(users store.UserRepository, settings store.SettingsRepository, passwordCost int, defaultModel string, logger *logger.Logger) AccountService {
	return &accountService{
		userRepository:     users,
		settingsRepository: settings,
		passwordCost:       passwordCost,
		defaultModel:       defaultModel,
		logger:             logger,
	}
}

// AuthoriseUser checks the login form. Unknown logins and wrong passwords
// raise the same flag.
func (a *accountService) AuthoriseUser(ctx context.Context, form models.Form, page models.Page) (models.User, bool, error) {
	log := logger.FromContext(ctx)

	if !validators.CheckContent(loginFields, form, page, validators.DefaultMaxLen) {
		metrics.RecordAccountEvent("login", false)
		return models.User{}, false, nil
	}

	user, err := a.userRepository.FindUserByLogin(ctx, form[models.FieldUsername])
	if errors.Is(err, store.ErrNoUserWasFound) {
		page.SetFlag(FlagIncorrectCredentials)
		metrics.RecordAccountEvent("login", false)
		return models.User{}, false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*accountService.AuthoriseUser").Msg("user search by login failed")
		return models.User{}, false, fmt.Errorf("user search by login failed: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, form[models.FieldPassword]) {
		log.Info().Int64("id", user.UserID).Str("login", user.Login).Msg("wrong password")
		page.SetFlag(FlagIncorrectCredentials)
		metrics.RecordAccountEvent("login", false)
		return models.User{}, false, nil
	}

	metrics.RecordAccountEvent("login", true)
	return user, true, nil
}

// RegisterUser validates the registration form and creates the account
// together with its algorithm settings. Every check runs so the page shows
// all problems at once.
func (a *accountService) RegisterUser(ctx context.Context, form models.Form, page models.Page, session *models.Session) (models.User, bool, error) {
	log := logger.FromContext(ctx)

	if session.Form == nil {
		session.Form = make(map[string]string)
	}
	for _, field := range RegisterEchoFields {
		session.Form[field] = form[field]
	}

	ok := validators.CheckContent(registerShortFields, form, page, validators.DefaultMaxLen)
	ok = validators.CheckContent(registerLongFields, form, page, validators.LongMaxLen) && ok

	if login := form[models.FieldLogin]; login != "" {
		taken, err := a.userRepository.LoginExists(ctx, login)
		if err != nil {
			return models.User{}, false, fmt.Errorf("login check failed: %w", err)
		}
		if taken {
			page.SetFlag(FlagLoginExists)
			ok = false
		}
	}

	if email := form[models.FieldEmail]; email != "" {
		if !validators.IsEmail(email) {
			page.SetFlag(FlagIncorrectEmail)
			ok = false
		} else {
			taken, err := a.userRepository.EmailExists(ctx, email)
			if err != nil {
				return models.User{}, false, fmt.Errorf("email check failed: %w", err)
			}
			if taken {
				page.SetFlag(FlagEmailExists)
				ok = false
			}
		}
	}

	if form[models.FieldPassword] != form[models.FieldPasswordDouble] {
		page.SetFlag(FlagPasswordsMismatch)
		ok = false
	}

	if !ok {
		metrics.RecordAccountEvent("register", false)
		return models.User{}, false, nil
	}

	hash, err := utils.HashPassword(form[models.FieldPassword], a.passwordCost)
	if err != nil {
		return models.User{}, false, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Login:        form[models.FieldLogin],
		Email:        form[models.FieldEmail],
		FirstName:    form[models.FieldFirstName],
		LastName:     form[models.FieldLastName],
		PasswordHash: hash,
		IsResearcher: form.Has(models.FieldResearcher),
	}
	settings := models.AlgorithmSettings{
		AlgorithmPackage: mlshell.DefaultAlgorithm.Package,
		AlgorithmName:    mlshell.DefaultAlgorithm.Class,
		AlgorithmParams:  []byte("{}"),
		Parser:           models.DefaultParserConfig,
		SecretQuestion:   form[models.FieldQuestion],
		SecretAnswer:     form[models.FieldAnswer],
		ModelPath:        a.defaultModel,
	}

	created, err := a.userRepository.CreateUserWithSettings(ctx, user, settings)
	switch {
	case errors.Is(err, store.ErrLoginAlreadyExists):
		page.SetFlag(FlagLoginExists)
		metrics.RecordAccountEvent("register", false)
		return models.User{}, false, nil
	case errors.Is(err, store.ErrEmailAlreadyExists):
		page.SetFlag(FlagEmailExists)
		metrics.RecordAccountEvent("register", false)
		return models.User{}, false, nil
	case err != nil:
		log.Err(err).Str("func", "*accountService.RegisterUser").Msg("user creation ended with error")
		return models.User{}, false, fmt.Errorf("user creation ended with error: %w", err)
	}

	session.Form = make(map[string]string)
	log.Info().Int64("id", created.UserID).Bool("researcher", created.IsResearcher).Msg("user registered")
	metrics.RecordAccountEvent("register", true)

	return created, true, nil
}

// RestoreSearchEmail is the first restore step. Missing and ambiguous
// matches raise the same flag.
func (a *accountService) RestoreSearchEmail(ctx context.Context, form models.Form, page models.Page, session *models.Session) (bool, error) {
	if session.Restore.Step != models.RestoreAwaitingEmail {
		page.SetFlag(FlagRestoreOutOfOrder)
		return false, nil
	}

	if !validators.CheckContent([]string{models.FieldEmail}, form, page, validators.DefaultMaxLen) {
		metrics.RecordAccountEvent("restore_email", false)
		return false, nil
	}

	email := form[models.FieldEmail]
	if !validators.IsEmail(email) {
		page.SetFlag(FlagIncorrectEmail)
		metrics.RecordAccountEvent("restore_email", false)
		return false, nil
	}

	users, err := a.userRepository.FindUsersByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("user search by email failed: %w", err)
	}
	if len(users) != 1 {
		page.SetFlag(FlagIncorrectEmail)
		metrics.RecordAccountEvent("restore_email", false)
		return false, nil
	}

	if err := session.Restore.EmailFound(email, users[0].UserID); err != nil {
		page.SetFlag(FlagRestoreOutOfOrder)
		return false, nil
	}

	metrics.RecordAccountEvent("restore_email", true)
	return true, nil
}

// RestoreCheckAnswer is the second restore step.
func (a *accountService) RestoreCheckAnswer(ctx context.Context, form models.Form, page models.Page, session *models.Session) (bool, error) {
	if session.Restore.Step != models.RestoreAwaitingAnswer {
		page.SetFlag(FlagRestoreOutOfOrder)
		return false, nil
	}

	if !validators.CheckContent([]string{models.FieldAnswer}, form, page, validators.LongMaxLen) {
		metrics.RecordAccountEvent("restore_answer", false)
		return false, nil
	}

	settings, err := a.settingsRepository.GetSettings(ctx, session.Restore.UserID)
	if err != nil {
		return false, fmt.Errorf("settings lookup failed: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(settings.SecretAnswer), []byte(form[models.FieldAnswer])) != 1 {
		page.SetFlag(FlagIncorrectAnswer)
		metrics.RecordAccountEvent("restore_answer", false)
		return false, nil
	}

	if err := session.Restore.AnswerAccepted(); err != nil {
		page.SetFlag(FlagRestoreOutOfOrder)
		return false, nil
	}

	metrics.RecordAccountEvent("restore_answer", true)
	return true, nil
}

// RestoreChangePassword is the last restore step. On success the restore
// state is reset.
func (a *accountService) RestoreChangePassword(ctx context.Context, form models.Form, page models.Page, session *models.Session) (bool, error) {
	log := logger.FromContext(ctx)

	if !session.Restore.IsConfirmed() {
		page.SetFlag(FlagRestoreOutOfOrder)
		return false, nil
	}

	if !validators.CheckContent(newPasswordFields, form, page, validators.DefaultMaxLen) {
		metrics.RecordAccountEvent("restore_password", false)
		return false, nil
	}
	if form[models.FieldPassword] != form[models.FieldPasswordDouble] {
		page.SetFlag(FlagPasswordsMismatch)
		metrics.RecordAccountEvent("restore_password", false)
		return false, nil
	}

	hash, err := utils.HashPassword(form[models.FieldPassword], a.passwordCost)
	if err != nil {
		return false, fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, session.Restore.UserID, hash); err != nil {
		log.Err(err).Str("func", "*accountService.RestoreChangePassword").Int64("id", session.Restore.UserID).Msg("password update failed")
		return false, fmt.Errorf("password update failed: %w", err)
	}

	log.Info().Int64("id", session.Restore.UserID).Msg("password restored")
	session.Restore.Reset()
	metrics.RecordAccountEvent("restore_password", true)

	return true, nil
}

func (a *accountService) ResearchFillData(ctx context.Context, session *models.Session, page models.Page) error {
	switch session.Restore.Step {
	case models.RestoreAwaitingAnswer:
		settings, err := a.settingsRepository.GetSettings(ctx, session.Restore.UserID)
		if err != nil {
			return fmt.Errorf("settings lookup failed: %w", err)
		}
		page.Set(models.FieldQuestion, settings.SecretQuestion)
		page.Set(models.FieldEmail, session.Restore.Email)
	case models.RestoreConfirmed:
		page.SetFlag(FlagConfirmed)
		page.Set(models.FieldEmail, session.Restore.Email)
	}

	return nil
}
