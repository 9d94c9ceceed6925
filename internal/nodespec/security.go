package nodespec

import (
	"fmt"

	"github.com/envmatch/envmatch/internal/searchspace"
)

// SecurityProfileType identifies the guest security posture.
type SecurityProfileType string

const (
	SecurityStandard   SecurityProfileType = "Standard"
	SecuritySecureBoot SecurityProfileType = "SecureBoot"
	SecurityCVM        SecurityProfileType = "CVM"
	SecurityStateless  SecurityProfileType = "Stateless"
)

// SecurityProfilePriority orders profiles from least to most demanding; min
// generation walks this list first. Runbooks depend on this exact ordering.
var SecurityProfilePriority = []SecurityProfileType{
	SecurityStandard,
	SecuritySecureBoot,
	SecurityCVM,
	SecurityStateless,
}

// EncryptDiskPriority prefers unencrypted disks as the cheaper default.
var EncryptDiskPriority = []bool{false, true}

// SecurityProfileSetting constrains the security posture of a node and
// whether its OS disk is encrypted.
type SecurityProfileSetting struct {
	Profiles    *searchspace.SetSpace[SecurityProfileType]
	EncryptDisk *searchspace.SetSpace[bool]
}

// DefaultSecurityProfile accepts any posture and either encryption state.
func DefaultSecurityProfile() *SecurityProfileSetting {
	return &SecurityProfileSetting{
		Profiles:    searchspace.AllowOnly(SecurityProfilePriority...),
		EncryptDisk: searchspace.AllowOnly(false, true),
	}
}

func (s *SecurityProfileSetting) Kind() string { return KindSecurityProfile }

func (s *SecurityProfileSetting) String() string {
	return fmt.Sprintf("%s/%s/%s", s.Kind(), s.Profiles, s.EncryptDisk)
}

// Check reports whether the capability offers an acceptable posture and
// encryption state.
func (s *SecurityProfileSetting) Check(capability FeatureSetting) *searchspace.Result {
	result := checkKind(s, capability)
	if !result.OK() {
		return result
	}
	other, ok := capability.(*SecurityProfileSetting)
	if !ok {
		result.AddReason(fmt.Sprintf(
			"settings are different, requirement: %s, capability: %T", s.Kind(), capability))
		return result
	}
	result.Merge(searchspace.CheckSetSpace(s.Profiles, other.Profiles), "security_profile")
	result.Merge(searchspace.CheckSetSpace(s.EncryptDisk, other.EncryptDisk), "encrypt_disk")
	return result
}

// GenerateMin pins the least demanding posture and encryption state offered
// by both sides.
func (s *SecurityProfileSetting) GenerateMin(capability FeatureSetting) (FeatureSetting, error) {
	if err := validateFeature(s, capability); err != nil {
		return nil, err
	}
	other := capability.(*SecurityProfileSetting)

	profile, err := searchspace.MinByPriority(s.Profiles, other.Profiles, SecurityProfilePriority)
	if err != nil {
		return nil, err
	}
	encrypt, err := searchspace.MinByPriority(s.EncryptDisk, other.EncryptDisk, EncryptDiskPriority)
	if err != nil {
		return nil, err
	}
	return &SecurityProfileSetting{
		Profiles:    searchspace.AllowOnly(profile),
		EncryptDisk: searchspace.AllowOnly(encrypt),
	}, nil
}
