package agency

import (
	"fmt"
	"strings"
)

func emptyMsg(field string) string {
	return fmt.Sprintf("%s cannot be empty", field)
}

func checkString(msgs []string, field, val string) []string {
	if strings.TrimSpace(val) == "" {
		msgs = append(msgs, emptyMsg(field))
	}
	return msgs
}

// checkID treats 0 as a missing key; ids are never negative.
func checkID(msgs []string, field string, id int64) []string {
	switch {
	case id == 0:
		msgs = append(msgs, emptyMsg(field))
	case id < 0:
		msgs = append(msgs,
			fmt.Sprintf("%s must be a positive integer", field))
	}
	return msgs
}

// ValidateScientist checks that name and field_of_study are not empty.
func ValidateScientist(in ScientistInput) error {
	var msgs []string
	msgs = checkString(msgs, "name", in.Name)
	msgs = checkString(msgs, "field_of_study", in.FieldOfStudy)
	if len(msgs) > 0 {
		return ValidationError(msgs...)
	}
	return nil
}

// ValidateScientistPatch checks fields present in the patch with the
// same rules as ValidateScientist.
func ValidateScientistPatch(p ScientistPatch) error {
	var msgs []string
	if p.Name != nil {
		msgs = checkString(msgs, "name", *p.Name)
	}
	if p.FieldOfStudy != nil {
		msgs = checkString(msgs, "field_of_study", *p.FieldOfStudy)
	}
	if len(msgs) > 0 {
		return ValidationError(msgs...)
	}
	return nil
}

// ValidatePlanet checks that name and nearest_star are not empty.
func ValidatePlanet(in PlanetInput) error {
	var msgs []string
	msgs = checkString(msgs, "name", in.Name)
	msgs = checkString(msgs, "nearest_star", in.NearestStar)
	if len(msgs) > 0 {
		return ValidationError(msgs...)
	}
	return nil
}

// ValidateMission checks that name is not empty and both foreign keys
// are set. Whether the keys resolve is decided by the store.
func ValidateMission(in MissionInput) error {
	var msgs []string
	msgs = checkString(msgs, "name", in.Name)
	msgs = checkID(msgs, "scientist_id", in.ScientistID)
	msgs = checkID(msgs, "planet_id", in.PlanetID)
	if len(msgs) > 0 {
		return ValidationError(msgs...)
	}
	return nil
}
