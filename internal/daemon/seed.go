package daemon

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/collect5/collect5/internal/config"
	"github.com/collect5/collect5/internal/db/models"
	"github.com/collect5/collect5/internal/project"
	"github.com/collect5/collect5/internal/uniuri"
)

func seed(_ *config.Config, db *gorm.DB) {
	// Seed initial data if user table is empty

	var count int64

	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		return
	}

	admin := models.User{
		Username: "admin",
		Email:    "admin@localhost",
		Password: models.HashPassword("changeme"),
		Active:   true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed admin user")
		return
	}

	// Demo project: a two-level hierarchy with a uniqueness rule on the
	// top form, handy for trying out the upload API.
	def := project.Definition{
		Forms: []project.Form{
			{
				Ref:  uniuri.NewRef(),
				Name: "Household",
				Slug: "household",
				Inputs: []project.Input{
					{Ref: uniuri.NewRef(), Type: project.TypeText, Uniqueness: project.UniquenessForm, IsTitle: true},
					{Ref: uniuri.NewRef(), Type: project.TypeInteger, Uniqueness: project.UniquenessNone},
				},
			},
			{
				Ref:  uniuri.NewRef(),
				Name: "Member",
				Slug: "member",
				Inputs: []project.Input{
					{Ref: uniuri.NewRef(), Type: project.TypeText, Uniqueness: project.UniquenessHierarchy, IsTitle: true},
				},
			},
		},
	}

	rawDef, err := json.Marshal(&def)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal demo project definition")
		return
	}

	demo := models.Project{
		Ref:        uniuri.NewRef(),
		Slug:       "demo-project",
		Name:       "Demo Project",
		Access:     models.ProjectAccessPublic,
		CreatedBy:  admin.ID,
		Definition: rawDef,
	}

	if err = db.Create(&demo).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed demo project")
		return
	}

	db.Create(&models.ProjectRole{
		UserID:    admin.ID,
		ProjectID: demo.ID,
		Role:      models.RoleCreator,
	})
}
