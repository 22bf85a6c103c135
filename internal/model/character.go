package model

import "encoding/json"

type Character struct {
	ID      int    `json:"_id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Species string `json:"species"`
	Gender  string `json:"gender"`
	Image   string `json:"image"`
}

// UnmarshalJSON accepts both the storage key "_id" and the plain "id".
func (c *Character) UnmarshalJSON(data []byte) error {
	type plain Character
	var aux struct {
		plain
		AltID *int `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Character(aux.plain)
	if aux.AltID != nil && c.ID == 0 {
		c.ID = *aux.AltID
	}
	return nil
}
