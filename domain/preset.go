package domain

import (
	"errors"
)

var (
	MessageSuccessCreatePreset = "goal preset created successfully"
	MessageSuccessGetPresets   = "goal presets retrieved successfully"
	MessageSuccessUpdatePreset = "goal preset updated successfully"
	MessageSuccessDeletePreset = "goal preset deleted successfully"

	MessageFailedCreatePreset = "failed to create goal preset"
	MessageFailedGetPresets   = "failed to retrieve goal presets"
	MessageFailedUpdatePreset = "failed to update goal preset"
	MessageFailedDeletePreset = "failed to delete goal preset"

	ErrGoalPresetNotFound = errors.New("goal preset not found")
)

type GoalPresetRequest struct {
	PresetName string `json:"preset_name" validate:"required"`

	GoalTargetsRequest
}
