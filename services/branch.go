// services/branch.go
package services

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"joyaspa-backend/models"
)

var numericRef = regexp.MustCompile(`^\d+$`)

// ResolveBranch finds a branch by numeric id or slug. Every endpoint that
// accepts a branch reference goes through this one resolver. Returns
// (nil, nil) when no branch matches.
func ResolveBranch(db *gorm.DB, idOrSlug string) (*models.Branch, error) {
	ref := strings.TrimSpace(idOrSlug)
	if ref == "" {
		return nil, nil
	}

	var branch models.Branch
	var err error
	if numericRef.MatchString(ref) {
		id, convErr := strconv.ParseUint(ref, 10, 64)
		if convErr != nil {
			return nil, nil
		}
		err = db.First(&branch, uint(id)).Error
	} else {
		err = db.Where("slug = ?", ref).First(&branch).Error
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &branch, nil
}
