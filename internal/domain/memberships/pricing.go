package memberships

// Currency for all membership fees. The provider order is created in this
// currency and the price table values are passed through unchanged.
const Currency = "INR"

// AudienceConfig is what the registration flow carries forward once an
// audience is selected: display title, fee, and the audience-specific field
// set the form renders. Those fields are collected but not required
// (soft lead-capture).
type AudienceConfig struct {
	Title     string
	AmountINR int64
	Fields    []string
}

var audienceConfigs = map[AudienceType]AudienceConfig{
	AudienceStudent: {
		Title:     "Student Membership",
		AmountINR: 300,
		Fields:    []string{"institution_name", "course", "year_of_study"},
	},
	AudienceTeacher: {
		Title:     "Teacher Membership",
		AmountINR: 500,
		Fields:    []string{"institution_name", "subject", "experience_years"},
	},
	AudienceInstitution: {
		Title:     "Institutional Membership",
		AmountINR: 5000,
		Fields:    []string{"institution_name", "institution_type", "head_name", "student_count"},
	},
	AudienceProfessional: {
		Title:     "Professional Membership",
		AmountINR: 1000,
		Fields:    []string{"organization", "designation"},
	},
	AudienceCompany: {
		Title:     "Corporate Membership",
		AmountINR: 10000,
		Fields:    []string{"company_name", "industry", "contact_person"},
	},
	AudienceNGO: {
		Title:     "NGO Membership",
		AmountINR: 2000,
		Fields:    []string{"ngo_name", "registration_number", "focus_area"},
	},
}

// Config looks up the static per-audience configuration. The table is
// immutable; callers must treat the returned value as read-only.
func Config(t AudienceType) (AudienceConfig, bool) {
	cfg, ok := audienceConfigs[t]
	return cfg, ok
}

// Price returns the membership fee for an audience type.
func Price(t AudienceType) (int64, bool) {
	cfg, ok := audienceConfigs[t]
	if !ok {
		return 0, false
	}
	return cfg.AmountINR, true
}

// AllAudiences lists the selectable audience types in display order.
func AllAudiences() []AudienceType {
	return []AudienceType{
		AudienceStudent, AudienceTeacher, AudienceInstitution,
		AudienceProfessional, AudienceCompany, AudienceNGO,
	}
}
