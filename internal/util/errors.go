package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseNotPublished = errors.New("course not published")
	ErrLectureNotFound    = errors.New("lecture not found")
	ErrSectionNotFound    = errors.New("section not found")
	ErrNotEnrolled        = errors.New("user not enrolled in this course")
	ErrAlreadyEnrolled    = errors.New("user already enrolled in this course")
	ErrCourseNotCompleted = errors.New("course not yet completed")
	ErrCertNotFound       = errors.New("certificate not found")
)
