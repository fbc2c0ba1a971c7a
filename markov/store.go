package markov

import "github.com/skyla-ma/melody-surprise/util"

// SaveAll writes every genre model into one binary file.
func SaveAll(filename string, models map[string]Model) error {
	return util.CreateBinary(filename, models)
}

// LoadAll reads back what SaveAll wrote.
func LoadAll(filename string) (map[string]Model, error) {
	var models map[string]Model
	if err := util.ReadBinary(filename, &models); err != nil {
		return nil, err
	}
	return models, nil
}
