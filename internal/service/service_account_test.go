package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/mlshell"
	"github.com/MKhiriev/menu-predictor/internal/mock"
	"github.com/MKhiriev/menu-predictor/internal/store"
	"github.com/MKhiriev/menu-predictor/internal/utils"
	"github.com/MKhiriev/menu-predictor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testCost = 4

func newTestAccountSvc(t *testing.T) (*accountService, *mock.MockUserRepository, *mock.MockSettingsRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	settings := mock.NewMockSettingsRepository(ctrl)

	svc := NewAccountService(users, settings, testCost, "models/default.mdl", logger.Nop()).(*accountService)
	return svc, users, settings
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := utils.HashPassword(password, testCost)
	require.NoError(t, err)
	return h
}

func bobForm() models.Form {
	return models.Form{
		models.FieldLogin:          "bob",
		models.FieldPassword:       "x",
		models.FieldPasswordDouble: "x",
		models.FieldFirstName:      "Bob",
		models.FieldLastName:       "X",
		models.FieldEmail:          "bob@example.com",
		models.FieldQuestion:       "q",
		models.FieldAnswer:         "a",
	}
}

// ── AuthoriseUser ────────────────────────────────────────────────────────────

func TestAuthoriseUser_Success(t *testing.T) {
	svc, users, _ := newTestAccountSvc(t)
	ctx := context.Background()

	users.EXPECT().FindUserByLogin(ctx, "bob").
		Return(models.User{UserID: 1, Login: "bob", PasswordHash: hashed(t, "secret")}, nil)

	page := models.NewPage()
	user, ok, err := svc.AuthoriseUser(ctx, models.Form{models.FieldUsername: "bob", models.FieldPassword: "secret"}, page)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), user.UserID)
	assert.Empty(t, page)
}

func TestAuthoriseUser_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	svc, users, _ := newTestAccountSvc(t)
	ctx := context.Background()

	users.EXPECT().FindUserByLogin(ctx, "bob").
		Return(models.User{UserID: 1, PasswordHash: hashed(t, "secret")}, nil)
	users.EXPECT().FindUserByLogin(ctx, "ghost").
		Return(models.User{}, store.ErrNoUserWasFound)

	wrong := models.NewPage()
	_, ok, err := svc.AuthoriseUser(ctx, models.Form{models.FieldUsername: "bob", models.FieldPassword: "guess"}, wrong)
	require.NoError(t, err)
	assert.False(t, ok)

	unknown := models.NewPage()
	_, ok, err = svc.AuthoriseUser(ctx, models.Form{models.FieldUsername: "ghost", models.FieldPassword: "guess"}, unknown)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, wrong, unknown)
	assert.True(t, wrong.Flag(FlagIncorrectCredentials))
}

func TestAuthoriseUser_ValidationFailureSkipsLookup(t *testing.T) {
	svc, _, _ := newTestAccountSvc(t)

	page := models.NewPage()
	_, ok, err := svc.AuthoriseUser(context.Background(), models.Form{models.FieldUsername: "bob$"}, page)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, page.Flag("incorrect_username"))
	assert.True(t, page.Flag("no_password"))
}

func TestAuthoriseUser_RepositoryError(t *testing.T) {
	svc, users, _ := newTestAccountSvc(t)

	users.EXPECT().FindUserByLogin(gomock.Any(), "bob").Return(models.User{}, errors.New("db down"))

	_, ok, err := svc.AuthoriseUser(context.Background(), models.Form{models.FieldUsername: "bob", models.FieldPassword: "x"}, models.NewPage())
	assert.Error(t, err)
	assert.False(t, ok)
}

// ── RegisterUser ─────────────────────────────────────────────────────────────

func TestRegisterUser_Success(t *testing.T) {
	svc, users, _ := newTestAccountSvc(t)
	ctx := context.Background()

	users.EXPECT().LoginExists(ctx, "bob").Return(false, nil)
	users.EXPECT().EmailExists(ctx, "bob@example.com").Return(false, nil)
	users.EXPECT().CreateUserWithSettings(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User, s models.AlgorithmSettings) (models.User, error) {
			assert.Equal(t, "bob", u.Login)
			assert.True(t, utils.CheckPassword(u.PasswordHash, "x"))
			assert.False(t, u.IsResearcher)
			assert.Equal(t, "models/default.mdl", s.ModelPath)
			assert.Equal(t, mlshell.DefaultAlgorithm.Class, s.AlgorithmName)
			assert.Equal(t, "q", s.SecretQuestion)
			assert.Equal(t, "a", s.SecretAnswer)
			assert.Equal(t, models.DefaultParserConfig, s.Parser)
			u.UserID = 10
			return u, nil
		},
	)

	session := models.NewSession(0)
	page := models.NewPage()
	user, ok, err := svc.RegisterUser(ctx, bobForm(), page, session)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(10), user.UserID)
	assert.Empty(t, session.Form, "echoes are cleared after success")
	assert.Empty(t, page)
}

func TestRegisterUser_Researcher(t *testing.T) {
	svc, users, _ := newTestAccountSvc(t)

	users.EXPECT().LoginExists(gomock.Any(), gomock.Any()).Return(false, nil)
	users.EXPECT().EmailExists(gomock.Any(), gomock.Any()).Return(false, nil)
	users.EXPECT().CreateUserWithSettings(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User, _ models.AlgorithmSettings) (models.User, error) {
			assert.True(t, u.IsResearcher)
			return u, nil
		},
	)

	form := bobForm()
	form[models.FieldResearcher] = "on"

	_, ok, err := svc.RegisterUser(context.Background(), form, models.NewPage(), models.NewSession(0))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterUser_PasswordMismatch(t *testing.T) {
	svc, users, _ := newTestAccountSvc(t)

	users.EXPECT().LoginExists(gomock.Any(), "bob").Return(false, nil)
	users.EXPECT().EmailExists(gomock.Any(), "bob@example.com").Return(false, nil)
	users.EXPECT().CreateUserWithSettings(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	form := bobForm()
	form[models.FieldPasswordDouble] = "y"

	session := models.NewSession(0)
	page := models.NewPage()
	_, ok, err := svc.RegisterUser(context.Background(), form, page, session)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, page.Flag(FlagPasswordsMismatch))
	assert.Equal(t, "bob", session.Form[models.FieldLogin])
	assert.NotContains(t, session.Form, models.FieldPassword)
}

func TestRegisterUser_TakenLoginAndEmail(t *testing.T) {
	svc, users, _ := newTestAccountSvc(t)

	users.EXPECT().LoginExists(gomock.Any(), "bob").Return(true, nil)
	users.EXPECT().EmailExists(gomock.Any(), "bob@example.com").Return(true, nil)

	page := models.NewPage()
	_, ok, err := svc.RegisterUser(context.Background(), bobForm(), page, models.NewSession(0))

	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, page.Flag(FlagLoginExists))
	assert.True(t, page.Flag(FlagEmailExists))
}

func TestRegisterUser_MalformedEmail(t *testing.T) {
	svc, users, _ := newTestAccountSvc(t)

	users.EXPECT().LoginExists(gomock.Any(), "bob").Return(false, nil)

	form := bobForm()
	form[models.FieldEmail] = "bob.example.com"

	page := models.NewPage()
	_, ok, err := svc.RegisterUser(context.Background(), form, page, models.NewSession(0))

	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, page.Flag(FlagIncorrectEmail))
}

func TestRegisterUser_LongAnswerAllowed(t *testing.T) {
	svc, users, _ := newTestAccountSvc(t)

	users.EXPECT().LoginExists(gomock.Any(), gomock.Any()).Return(false, nil)
	users.EXPECT().EmailExists(gomock.Any(), gomock.Any()).Return(false, nil)
	users.EXPECT().CreateUserWithSettings(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.User{UserID: 1}, nil)

	form := bobForm()
	form[models.FieldAnswer] = "the name of the street where I grew up as a child"

	_, ok, err := svc.RegisterUser(context.Background(), form, models.NewPage(), models.NewSession(0))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterUser_ConcurrentDuplicate(t *testing.T) {
	svc, users, _ := newTestAccountSvc(t)

	users.EXPECT().LoginExists(gomock.Any(), gomock.Any()).Return(false, nil)
	users.EXPECT().EmailExists(gomock.Any(), gomock.Any()).Return(false, nil)
	users.EXPECT().CreateUserWithSettings(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrLoginAlreadyExists)

	page := models.NewPage()
	_, ok, err := svc.RegisterUser(context.Background(), bobForm(), page, models.NewSession(0))

	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, page.Flag(FlagLoginExists))
}

// ── Restore ──────────────────────────────────────────────────────────────────

func TestRestore_ThreeSteps(t *testing.T) {
	svc, users, settings := newTestAccountSvc(t)
	ctx := context.Background()
	session := models.NewSession(0)

	users.EXPECT().FindUsersByEmail(ctx, "bob@example.com").Return([]models.User{{UserID: 3}}, nil)
	settings.EXPECT().GetSettings(ctx, int64(3)).
		Return(models.AlgorithmSettings{UserID: 3, SecretQuestion: "q", SecretAnswer: "a"}, nil).Times(2)
	users.EXPECT().UpdatePassword(ctx, int64(3), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, hash string) error {
			assert.True(t, utils.CheckPassword(hash, "new"))
			return nil
		},
	)

	ok, err := svc.RestoreSearchEmail(ctx, models.Form{models.FieldEmail: "bob@example.com"}, models.NewPage(), session)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.RestoreAwaitingAnswer, session.Restore.Step)

	page := models.NewPage()
	require.NoError(t, svc.ResearchFillData(ctx, session, page))
	assert.Equal(t, "q", page.Get(models.FieldQuestion))
	assert.Equal(t, "bob@example.com", page.Get(models.FieldEmail))

	ok, err = svc.RestoreCheckAnswer(ctx, models.Form{models.FieldAnswer: "a"}, models.NewPage(), session)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, session.Restore.IsConfirmed())

	page = models.NewPage()
	require.NoError(t, svc.ResearchFillData(ctx, session, page))
	assert.True(t, page.Flag(FlagConfirmed))

	ok, err = svc.RestoreChangePassword(ctx, models.Form{models.FieldPassword: "new", models.FieldPasswordDouble: "new"}, models.NewPage(), session)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, models.RestoreAwaitingEmail, session.Restore.Step)
}

func TestRestore_WrongAnswerStaysUnconfirmed(t *testing.T) {
	svc, _, settings := newTestAccountSvc(t)
	session := models.NewSession(0)
	require.NoError(t, session.Restore.EmailFound("bob@example.com", 3))

	settings.EXPECT().GetSettings(gomock.Any(), int64(3)).
		Return(models.AlgorithmSettings{SecretAnswer: "a"}, nil)

	page := models.NewPage()
	ok, err := svc.RestoreCheckAnswer(context.Background(), models.Form{models.FieldAnswer: "b"}, page, session)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, page.Flag(FlagIncorrectAnswer))
	assert.False(t, session.Restore.IsConfirmed())
	assert.Equal(t, models.RestoreAwaitingAnswer, session.Restore.Step)
}

func TestRestoreSearchEmail_AmbiguousAndMissingLookAlike(t *testing.T) {
	svc, users, _ := newTestAccountSvc(t)

	users.EXPECT().FindUsersByEmail(gomock.Any(), "two@example.com").Return([]models.User{{UserID: 1}, {UserID: 2}}, nil)
	users.EXPECT().FindUsersByEmail(gomock.Any(), "none@example.com").Return(nil, nil)

	for _, email := range []string{"two@example.com", "none@example.com"} {
		session := models.NewSession(0)
		page := models.NewPage()

		ok, err := svc.RestoreSearchEmail(context.Background(), models.Form{models.FieldEmail: email}, page, session)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.True(t, page.Flag(FlagIncorrectEmail))
		assert.Equal(t, models.RestoreAwaitingEmail, session.Restore.Step)
	}
}

func TestRestore_OutOfOrder(t *testing.T) {
	svc, _, _ := newTestAccountSvc(t)
	ctx := context.Background()

	page := models.NewPage()
	ok, err := svc.RestoreCheckAnswer(ctx, models.Form{models.FieldAnswer: "a"}, page, models.NewSession(0))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, page.Flag(FlagRestoreOutOfOrder))

	page = models.NewPage()
	ok, err = svc.RestoreChangePassword(ctx, models.Form{models.FieldPassword: "n", models.FieldPasswordDouble: "n"}, page, models.NewSession(0))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, page.Flag(FlagRestoreOutOfOrder))
}

func TestRestoreChangePassword_Mismatch(t *testing.T) {
	svc, _, _ := newTestAccountSvc(t)
	session := models.NewSession(0)
	require.NoError(t, session.Restore.EmailFound("bob@example.com", 3))
	require.NoError(t, session.Restore.AnswerAccepted())

	page := models.NewPage()
	ok, err := svc.RestoreChangePassword(context.Background(), models.Form{models.FieldPassword: "a", models.FieldPasswordDouble: "b"}, page, session)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, page.Flag(FlagPasswordsMismatch))
	assert.True(t, session.Restore.IsConfirmed())
}

func TestResearchFillData_AwaitingEmail(t *testing.T) {
	svc, _, _ := newTestAccountSvc(t)

	page := models.NewPage()
	require.NoError(t, svc.ResearchFillData(context.Background(), models.NewSession(0), page))
	assert.Empty(t, page)
}
