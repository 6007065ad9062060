package services

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/hireboard/internal/models"
	"github.com/yoockh/hireboard/internal/utils"
)

// Blob uploads attach a stored-object reference to the caller's profile. The
// profile must already exist; the upload itself goes through the configured
// storage.Uploader.

// objectName builds a unique object path, keeping the upload's extension so
// the stored blob stays recognizable.
func objectName(prefix, callerID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		ext = ""
	}
	return prefix + "/" + callerID + "/" + uuid.NewString() + ext
}

func (s *profileService) uploadObject(ctx context.Context, op, object, mimeType string, r io.Reader) (string, error) {
	if s.uploader == nil {
		return "", utils.E(utils.CodeInternal, op, "uploader is not configured", nil)
	}
	ref, err := s.uploader.Upload(ctx, object, mimeType, r)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "failed to upload file", err)
	}
	return ref, nil
}

func (s *profileService) AttachResume(ctx context.Context, callerID, fileName, mimeType string, r io.Reader) (*models.JobSeekerProfile, error) {
	const op = "ProfileService.AttachResume"

	if _, err := s.requireRole(ctx, op, callerID, models.RoleJobSeeker); err != nil {
		return nil, err
	}
	p, err := s.profiles.GetSeeker(ctx, callerID)
	if err != nil {
		return nil, s.wrapGet(op, err)
	}

	name := objectName("resumes", callerID, fileName)
	ref, err := s.uploadObject(ctx, op, name, mimeType, r)
	if err != nil {
		return nil, err
	}

	p.Resume = ref
	p.UpdatedAt = time.Now().UTC()
	if err := s.profiles.UpsertSeeker(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save resume reference", err)
	}
	return p, nil
}

func (s *profileService) AttachPicture(ctx context.Context, callerID, fileName, mimeType string, r io.Reader) (*models.JobSeekerProfile, error) {
	const op = "ProfileService.AttachPicture"

	if _, err := s.requireRole(ctx, op, callerID, models.RoleJobSeeker); err != nil {
		return nil, err
	}
	p, err := s.profiles.GetSeeker(ctx, callerID)
	if err != nil {
		return nil, s.wrapGet(op, err)
	}

	name := objectName("profile_pictures", callerID, fileName)
	ref, err := s.uploadObject(ctx, op, name, mimeType, r)
	if err != nil {
		return nil, err
	}

	p.ProfilePicture = ref
	p.UpdatedAt = time.Now().UTC()
	if err := s.profiles.UpsertSeeker(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save picture reference", err)
	}
	return p, nil
}

func (s *profileService) AttachLogo(ctx context.Context, callerID, fileName, mimeType string, r io.Reader) (*models.EmployerProfile, error) {
	const op = "ProfileService.AttachLogo"

	if _, err := s.requireRole(ctx, op, callerID, models.RoleEmployer); err != nil {
		return nil, err
	}
	p, err := s.profiles.GetEmployer(ctx, callerID)
	if err != nil {
		return nil, s.wrapGet(op, err)
	}

	name := objectName("company_logos", callerID, fileName)
	ref, err := s.uploadObject(ctx, op, name, mimeType, r)
	if err != nil {
		return nil, err
	}

	p.Logo = ref
	p.UpdatedAt = time.Now().UTC()
	if err := s.profiles.UpsertEmployer(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save logo reference", err)
	}
	return p, nil
}
