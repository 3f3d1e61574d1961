package service

import (
	"sync"
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/scorm"
	"learnhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedReport() LectureProgressReport {
	return LectureProgressReport{IsCompleted: boolPtr(true)}
}

func TestReportLectureOutcome_ProgressSequence(t *testing.T) {
	f := newFixture(t, 5)

	wantProgress := []int{20, 40, 60, 80, 100}
	wantStatus := []scorm.LessonStatus{
		scorm.StatusIncomplete,
		scorm.StatusIncomplete,
		scorm.StatusIncomplete,
		scorm.StatusIncomplete,
		scorm.StatusCompleted,
	}

	for i, lecture := range f.lectures {
		result, err := f.progress.ReportLectureOutcome(f.student.ID, lecture.ID, completedReport())
		require.NoError(t, err)

		assert.Equal(t, wantProgress[i], result.NewProgress, "after lecture %d", i+1)
		assert.Equal(t, wantStatus[i], result.ScormStatus, "after lecture %d", i+1)
		assert.Equal(t, i == len(f.lectures)-1, result.JustCompleted, "after lecture %d", i+1)

		// certificate appears only on the completion edge
		if i < len(f.lectures)-1 {
			assert.EqualValues(t, 0, f.certificateCount(t))
		}
	}

	enrollment := f.reloadEnrollment(t)
	assert.Equal(t, 100, enrollment.Progress)
	assert.Equal(t, string(scorm.StatusCompleted), enrollment.ScormStatus)
	require.NotNil(t, enrollment.CompletedAt)
	assert.EqualValues(t, 1, f.certificateCount(t))
}

func TestReportLectureOutcome_RedundantCompletionIsNotAnEdge(t *testing.T) {
	f := newFixture(t, 4)

	for _, lecture := range f.lectures {
		_, err := f.progress.ReportLectureOutcome(f.student.ID, lecture.ID, completedReport())
		require.NoError(t, err)
	}

	firstCompletedAt := f.reloadEnrollment(t).CompletedAt
	require.NotNil(t, firstCompletedAt)

	result, err := f.progress.ReportLectureOutcome(f.student.ID, f.lectures[3].ID, completedReport())
	require.NoError(t, err)
	assert.Equal(t, 100, result.NewProgress)
	assert.False(t, result.JustCompleted)

	enrollment := f.reloadEnrollment(t)
	require.NotNil(t, enrollment.CompletedAt)
	assert.True(t, enrollment.CompletedAt.Equal(*firstCompletedAt), "completedAt must not be overwritten")
	assert.EqualValues(t, 1, f.certificateCount(t))
}

func TestReportLectureOutcome_PartialUpdateMerge(t *testing.T) {
	f := newFixture(t, 2)
	lecture := f.lectures[0]

	_, err := f.progress.ReportLectureOutcome(f.student.ID, lecture.ID, LectureProgressReport{
		WatchedDuration:     intPtr(120),
		ScormLessonLocation: strPtr("page-4"),
	})
	require.NoError(t, err)

	// a later report without those fields must not clobber them
	_, err = f.progress.ReportLectureOutcome(f.student.ID, lecture.ID, LectureProgressReport{
		LastPosition: intPtr(95),
	})
	require.NoError(t, err)

	var row model.LectureProgress
	require.NoError(t, f.db.Where("user_id = ? AND lecture_id = ?", f.student.ID, lecture.ID).First(&row).Error)
	assert.Equal(t, 120, row.WatchedDuration)
	assert.Equal(t, 95, row.LastPosition)
	assert.Equal(t, "page-4", row.ScormLessonLocation)
	assert.False(t, row.IsCompleted)
	assert.Nil(t, row.CompletedAt)
	assert.Equal(t, string(scorm.StatusIncomplete), row.ScormLessonStatus)
}

func TestReportLectureOutcome_SessionTimeAccumulates(t *testing.T) {
	f := newFixture(t, 1)
	lecture := f.lectures[0]

	for _, sessionTime := range []string{"0000:01:00", "0000:00:30"} {
		_, err := f.progress.ReportLectureOutcome(f.student.ID, lecture.ID, LectureProgressReport{
			ScormSessionTime: strPtr(sessionTime),
		})
		require.NoError(t, err)
	}

	// malformed time degrades to zero instead of failing ingestion
	_, err := f.progress.ReportLectureOutcome(f.student.ID, lecture.ID, LectureProgressReport{
		ScormSessionTime: strPtr("not-a-time"),
	})
	require.NoError(t, err)

	var row model.LectureProgress
	require.NoError(t, f.db.Where("user_id = ? AND lecture_id = ?", f.student.ID, lecture.ID).First(&row).Error)
	assert.Equal(t, "0000:01:30", row.ScormTotalTime)
	assert.Equal(t, "not-a-time", row.ScormSessionTime, "last session time is stored verbatim")
}

func TestReportLectureOutcome_QuizOverridesStatus(t *testing.T) {
	f := newFixture(t, 2)

	// full watch but failed quiz -> failed, not completed
	_, err := f.progress.ReportLectureOutcome(f.student.ID, f.lectures[0].ID, LectureProgressReport{
		IsCompleted: boolPtr(true),
		QuizCorrect: intPtr(6),
		QuizTotal:   intPtr(10),
	})
	require.NoError(t, err)

	var row model.LectureProgress
	require.NoError(t, f.db.Where("user_id = ? AND lecture_id = ?", f.student.ID, f.lectures[0].ID).First(&row).Error)
	assert.Equal(t, string(scorm.StatusFailed), row.ScormLessonStatus)
	require.NotNil(t, row.QuizScore)
	assert.Equal(t, 60.0, *row.QuizScore)

	// low progress but passed quiz -> passed
	_, err = f.progress.ReportLectureOutcome(f.student.ID, f.lectures[1].ID, LectureProgressReport{
		WatchedDuration: intPtr(60),
		QuizCorrect:     intPtr(9),
		QuizTotal:       intPtr(10),
	})
	require.NoError(t, err)

	// fresh destination: reusing row would fold its primary key into the query
	var second model.LectureProgress
	require.NoError(t, f.db.Where("user_id = ? AND lecture_id = ?", f.student.ID, f.lectures[1].ID).First(&second).Error)
	assert.Equal(t, string(scorm.StatusPassed), second.ScormLessonStatus)

	// a failed lecture quiz never demotes the course-level status
	enrollment := f.reloadEnrollment(t)
	assert.Equal(t, string(scorm.StatusIncomplete), enrollment.ScormStatus)
}

func TestReportLectureOutcome_UncompleteKeepsEnrollmentCompletedAt(t *testing.T) {
	f := newFixture(t, 2)

	for _, lecture := range f.lectures {
		_, err := f.progress.ReportLectureOutcome(f.student.ID, lecture.ID, completedReport())
		require.NoError(t, err)
	}
	require.NotNil(t, f.reloadEnrollment(t).CompletedAt)

	result, err := f.progress.ReportLectureOutcome(f.student.ID, f.lectures[0].ID, LectureProgressReport{
		IsCompleted: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, 50, result.NewProgress)
	assert.False(t, result.JustCompleted)

	var row model.LectureProgress
	require.NoError(t, f.db.Where("user_id = ? AND lecture_id = ?", f.student.ID, f.lectures[0].ID).First(&row).Error)
	assert.False(t, row.IsCompleted)
	assert.Nil(t, row.CompletedAt, "lecture completedAt clears on revert")

	enrollment := f.reloadEnrollment(t)
	assert.Equal(t, 50, enrollment.Progress)
	assert.NotNil(t, enrollment.CompletedAt, "enrollment completedAt is set once and never cleared")
}

func TestReportLectureOutcome_Rejections(t *testing.T) {
	f := newFixture(t, 1)

	outsider := model.User{Name: "Olga", Email: "olga@example.com", Password: "x"}
	require.NoError(t, f.db.Create(&outsider).Error)

	_, err := f.progress.ReportLectureOutcome(outsider.ID, f.lectures[0].ID, completedReport())
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	var count int64
	require.NoError(t, f.db.Model(&model.LectureProgress{}).Where("user_id = ?", outsider.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count, "rejection must happen before any mutation")

	_, err = f.progress.ReportLectureOutcome(f.student.ID, 99999, completedReport())
	assert.ErrorIs(t, err, util.ErrLectureNotFound)
}

func TestReportLectureOutcome_ConcurrentFinalReports(t *testing.T) {
	f := newFixture(t, 4)

	for _, lecture := range f.lectures[:3] {
		_, err := f.progress.ReportLectureOutcome(f.student.ID, lecture.ID, completedReport())
		require.NoError(t, err)
	}

	results := make([]*ProgressResult, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.progress.ReportLectureOutcome(f.student.ID, f.lectures[3].ID, completedReport())
		}(i)
	}
	wg.Wait()

	edges := 0
	for i, result := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, 100, result.NewProgress)
		if result.JustCompleted {
			edges++
		}
	}
	assert.Equal(t, 1, edges, "exactly one report observes the completion edge")
	assert.EqualValues(t, 1, f.certificateCount(t))
	require.NotNil(t, f.reloadEnrollment(t).CompletedAt)
}

func TestGetCourseProgress(t *testing.T) {
	f := newFixture(t, 3)

	_, err := f.progress.ReportLectureOutcome(f.student.ID, f.lectures[0].ID, completedReport())
	require.NoError(t, err)

	progress, err := f.progress.GetCourseProgress(f.student.ID, f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, progress.Enrollment.Progress)
	assert.Len(t, progress.Lectures, 1)

	_, err = f.progress.GetCourseProgress(f.student.ID, 99999)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}
