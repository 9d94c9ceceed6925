package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	envmatcherrors "github.com/envmatch/envmatch/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)

	diskTypes       = valueSet("StandardHDDLRS", "StandardSSDLRS", "Ephemeral", "PremiumSSDLRS", "PremiumV2SSDLRS", "UltraSSDLRS")
	controllerTypes = valueSet("SCSI", "NVME")
	dataPaths       = valueSet("Synthetic", "Sriov")
	availabilities  = valueSet("Default", "NoRedundancy", "AvailabilitySet", "AvailabilityZone")
	profiles        = valueSet("Standard", "SecureBoot", "CVM", "Stateless")
)

func valueSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidateDocument performs schema and cross-field validation on a
// requirement document.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return envmatcherrors.NewValidationError("document", "document is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(doc); err != nil {
		return convertValidationError(err)
	}

	names := make(map[string]int, len(doc.Nodes))
	for i, node := range doc.Nodes {
		if node.Name != "" {
			if _, exists := names[node.Name]; exists {
				return envmatcherrors.NewValidationError(
					fieldForNode(i, "name"),
					fmt.Sprintf("duplicate node name %q", node.Name), nil)
			}
			names[node.Name] = i
		}
		if err := validateNode(i, node); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(index int, node NodeRequirement) error {
	if node.Disk != nil {
		if err := validateOptions(fieldForNode(index, "disk.os_disk_type"), node.Disk.OSDiskType, diskTypes); err != nil {
			return err
		}
		if err := validateOptions(fieldForNode(index, "disk.data_disk_type"), node.Disk.DataDiskType, diskTypes); err != nil {
			return err
		}
		if err := validateOptions(fieldForNode(index, "disk.disk_controller_type"), node.Disk.ControllerType, controllerTypes); err != nil {
			return err
		}
	}
	if node.Network != nil {
		if err := validateOptions(fieldForNode(index, "network.data_path"), node.Network.DataPath, dataPaths); err != nil {
			return err
		}
	}

	seen := make(map[string]struct{}, len(node.Features))
	for _, feature := range node.Features {
		if _, dup := seen[feature.Type]; dup {
			return envmatcherrors.NewValidationError(
				fieldForNode(index, "features"),
				fmt.Sprintf("duplicate feature %q", feature.Type), nil)
		}
		seen[feature.Type] = struct{}{}
		if err := validateFeature(index, feature); err != nil {
			return err
		}
	}
	return nil
}

func validateFeature(index int, feature FeatureRequirement) error {
	switch feature.Type {
	case "availability":
		return validateOptions(
			fieldForNode(index, "features.availability_types"),
			feature.AvailabilityTypes, availabilities)
	case "security_profile":
		return validateOptions(
			fieldForNode(index, "features.profiles"),
			feature.Profiles, profiles)
	default:
		return nil
	}
}

func validateOptions(field string, options Options[string], allowed map[string]struct{}) error {
	for _, value := range options.Values() {
		if _, ok := allowed[value]; !ok {
			return envmatcherrors.NewValidationError(
				field, fmt.Sprintf("unknown value %q", value), nil)
		}
	}
	return nil
}

func fieldForNode(index int, field string) string {
	return fmt.Sprintf("nodes[%d].%s", index, field)
}

func convertValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return envmatcherrors.NewValidationError("document", err.Error(), err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, fmt.Sprintf(
			"%s failed on %q", fieldError.Namespace(), fieldError.Tag()))
	}
	sort.Strings(messages)
	return envmatcherrors.NewValidationError(
		"document", strings.Join(messages, "; "), err)
}
