package service

import (
	"strings"
	"sync"
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeCourse(t *testing.T, f *fixture) {
	t.Helper()
	for _, lecture := range f.lectures {
		_, err := f.progress.ReportLectureOutcome(f.student.ID, lecture.ID, completedReport())
		require.NoError(t, err)
	}
}

func TestRequestCertificate_RejectedBeforeCompletion(t *testing.T) {
	f := newFixture(t, 3)

	_, err := f.certificates.RequestCertificate(f.student.ID, f.course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotCompleted)

	_, err = f.progress.ReportLectureOutcome(f.student.ID, f.lectures[0].ID, completedReport())
	require.NoError(t, err)

	_, err = f.certificates.RequestCertificate(f.student.ID, f.course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotCompleted)
	assert.EqualValues(t, 0, f.certificateCount(t))
}

func TestRequestCertificate_NotEnrolled(t *testing.T) {
	f := newFixture(t, 1)

	outsider := model.User{Name: "Olga", Email: "olga@example.com", Password: "x"}
	require.NoError(t, f.db.Create(&outsider).Error)

	_, err := f.certificates.RequestCertificate(outsider.ID, f.course.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestRequestCertificate_IdempotentAfterAutoIssue(t *testing.T) {
	f := newFixture(t, 2)
	completeCourse(t, f)

	// auto issuance already fired on the completion edge
	require.EqualValues(t, 1, f.certificateCount(t))

	first, err := f.certificates.RequestCertificate(f.student.ID, f.course.ID)
	require.NoError(t, err)

	second, err := f.certificates.RequestCertificate(f.student.ID, f.course.ID)
	require.NoError(t, err)

	assert.Equal(t, first.CertificateNumber, second.CertificateNumber)
	assert.EqualValues(t, 1, f.certificateCount(t))
}

func TestCertificate_SnapshotsCourseAndOrganization(t *testing.T) {
	f := newFixture(t, 1)
	completeCourse(t, f)

	cert, err := f.certificates.RequestCertificate(f.student.ID, f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Practical Go", cert.CourseTitle)
	assert.Equal(t, "LearnHub Marketplace", cert.OrganizationName)
	assert.Equal(t, 3.5, cert.CPDPoints)
	assert.True(t, strings.HasPrefix(cert.CertificateNumber, "LH-"))

	// later renames must not touch certificates that were already issued
	require.NoError(t, f.db.Model(&model.Course{}).Where("id = ?", f.course.ID).
		Update("title", "Renamed Course").Error)
	require.NoError(t, f.db.Model(&model.Organization{}).Where("id = ?", f.organization.ID).
		Update("display_name", "Renamed Org").Error)

	verified, err := f.certificates.VerifyByNumber(cert.CertificateNumber)
	require.NoError(t, err)
	assert.Equal(t, "Practical Go", verified.CourseTitle)
	assert.Equal(t, "LearnHub Marketplace", verified.OrganizationName)
}

func TestIssueOnCompletion_ConcurrentTriggersCreateOneRow(t *testing.T) {
	f := newFixture(t, 1)
	completeCourse(t, f)

	// remove the auto-issued certificate to stage a clean race
	require.NoError(t, f.db.Unscoped().
		Where("user_id = ? AND course_id = ?", f.student.ID, f.course.ID).
		Delete(&model.Certificate{}).Error)

	certs := make([]*model.Certificate, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			certs[i], errs[i] = f.certificates.IssueOnCompletion(f.student.ID, f.course.ID)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, certs[0].CertificateNumber, certs[1].CertificateNumber)
	assert.EqualValues(t, 1, f.certificateCount(t))
}

func TestVerifyByNumber_Unknown(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.certificates.VerifyByNumber("LH-2026-DOESNOTEXI")
	assert.ErrorIs(t, err, util.ErrCertNotFound)
}

func TestListForUser(t *testing.T) {
	f := newFixture(t, 1)
	completeCourse(t, f)

	certs, err := f.certificates.ListForUser(f.student.ID)
	require.NoError(t, err)
	assert.Len(t, certs, 1)

	certs, err = f.certificates.ListForUser(f.instructor.ID)
	require.NoError(t, err)
	assert.Empty(t, certs)
}
