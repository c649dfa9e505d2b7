package domain

// TagSigil is the required first character of every in-game tag.
const TagSigil = '#'

// ClanTag identifies a clan. The raw string keeps its leading sigil.
type ClanTag string

// WarTag identifies a single clan-war-league war instance.
type WarTag string

// PlayerTag identifies a clan member.
type PlayerTag string

func validateTag(raw string) error {
	if len(raw) == 0 || raw[0] != TagSigil {
		return NewError(ErrCodeValidation, "tag must start with '#'")
	}
	return nil
}

// ParseClanTag validates raw and returns it as a ClanTag.
func ParseClanTag(raw string) (ClanTag, error) {
	if err := validateTag(raw); err != nil {
		return "", err
	}
	return ClanTag(raw), nil
}

// ParseWarTag validates raw and returns it as a WarTag.
func ParseWarTag(raw string) (WarTag, error) {
	if err := validateTag(raw); err != nil {
		return "", err
	}
	return WarTag(raw), nil
}

// ParsePlayerTag validates raw and returns it as a PlayerTag.
func ParsePlayerTag(raw string) (PlayerTag, error) {
	if err := validateTag(raw); err != nil {
		return "", err
	}
	return PlayerTag(raw), nil
}

func (t ClanTag) String() string   { return string(t) }
func (t WarTag) String() string    { return string(t) }
func (t PlayerTag) String() string { return string(t) }

// MarshalText serializes the tag as its raw string, sigil included.
func (t ClanTag) MarshalText() ([]byte, error) { return []byte(t), nil }

// UnmarshalText validates incoming tag strings, including JSON object keys.
func (t *ClanTag) UnmarshalText(data []byte) error {
	parsed, err := ParseClanTag(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t WarTag) MarshalText() ([]byte, error) { return []byte(t), nil }

func (t *WarTag) UnmarshalText(data []byte) error {
	parsed, err := ParseWarTag(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t PlayerTag) MarshalText() ([]byte, error) { return []byte(t), nil }

func (t *PlayerTag) UnmarshalText(data []byte) error {
	parsed, err := ParsePlayerTag(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
