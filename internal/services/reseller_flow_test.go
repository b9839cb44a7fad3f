package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lumina/internal/domain"
	"lumina/internal/repos"
	"lumina/internal/services"
)

func newResellerSvc(t *testing.T) (*services.ResellerService, *repos.UserRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	userRepo := repos.NewUserRepo(db)
	auth := &services.AuthService{Users: userRepo}
	return services.NewResellerService(repos.NewApplicationRepo(db), userRepo, auth), userRepo
}

func sampleApp() domain.ResellerApplication {
	return domain.ResellerApplication{
		CompanyName:   "Gem & Stone Co",
		ContactPerson: "Pat Smith",
		Email:         "pat@gemstone.test",
		Phone:         "+1 555 0199",
		BusinessType:  "retail-store",
	}
}

func TestApplyCreatesAccountAndPendingApplication(t *testing.T) {
	svc, userRepo := newResellerSvc(t)

	id, err := svc.Apply(sampleApp(), "S3cretPass", "S3cretPass")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	apps, err := svc.List(domain.AppPending)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.Equal(t, "Gem & Stone Co", apps[0].CompanyName)

	// The applicant can already log in, but has no wholesale pricing yet.
	u, err := userRepo.ByEmail("pat@gemstone.test")
	require.NoError(t, err)
	require.Equal(t, domain.RoleCustomer, u.Role)
	require.False(t, u.Wholesale())
}

func TestApplyPasswordMismatchWritesNothing(t *testing.T) {
	svc, userRepo := newResellerSvc(t)

	_, err := svc.Apply(sampleApp(), "S3cretPass", "different")
	require.ErrorIs(t, err, services.ErrPasswordMismatch)

	// Neither an account nor an application was created.
	_, err = userRepo.ByEmail("pat@gemstone.test")
	require.Error(t, err)
	apps, err := svc.List("")
	require.NoError(t, err)
	require.Empty(t, apps)
}

func TestApprovePromotesApplicant(t *testing.T) {
	svc, userRepo := newResellerSvc(t)

	id, err := svc.Apply(sampleApp(), "S3cretPass", "S3cretPass")
	require.NoError(t, err)

	require.NoError(t, svc.Approve(id, "u-admin"))

	u, err := userRepo.ByEmail("pat@gemstone.test")
	require.NoError(t, err)
	require.True(t, u.Wholesale())
	require.Equal(t, "Gem & Stone Co", u.Company)

	apps, err := svc.List(domain.AppApproved)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.Equal(t, "u-admin", apps[0].ReviewedBy)
}

func TestReviewIsFinal(t *testing.T) {
	svc, _ := newResellerSvc(t)

	id, err := svc.Apply(sampleApp(), "S3cretPass", "S3cretPass")
	require.NoError(t, err)

	require.NoError(t, svc.Approve(id, "u-admin"))

	// A second review in either direction fails: the status guard only
	// transitions applications that are still pending.
	require.ErrorIs(t, svc.Approve(id, "u-admin"), services.ErrAlreadyReviewed)
	require.ErrorIs(t, svc.Reject(id, "u-admin"), services.ErrAlreadyReviewed)
}

func TestRejectLeavesAccountRetail(t *testing.T) {
	svc, userRepo := newResellerSvc(t)

	id, err := svc.Apply(sampleApp(), "S3cretPass", "S3cretPass")
	require.NoError(t, err)

	require.NoError(t, svc.Reject(id, "u-admin"))

	u, err := userRepo.ByEmail("pat@gemstone.test")
	require.NoError(t, err)
	require.False(t, u.Wholesale())

	apps, err := svc.List(domain.AppRejected)
	require.NoError(t, err)
	require.Len(t, apps, 1)
}
