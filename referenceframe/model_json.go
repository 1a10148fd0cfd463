package referenceframe

import (
	_ "embed"
	"encoding/json"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	spatial "go.viam.com/armsim/spatialmath"
)

//go:embed models/armsim6.json
var defaultModelJSON []byte

// ModelConfigJSON represents all supported fields in a chain JSON file.
type ModelConfigJSON struct {
	Name   string        `json:"name"`
	Joints []JointConfig `json:"joints"`
	Flange r3.Vector     `json:"flange"`
}

// JointConfig is a revolute joint: a translation from the previous joint, then a rotation about
// Axis. Min and Max are in degrees.
type JointConfig struct {
	ID     string    `json:"id"`
	Axis   r3.Vector `json:"axis"`
	Offset r3.Vector `json:"offset"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
}

// ToJoint converts the config into a Joint.
func (cfg JointConfig) ToJoint() (*Joint, error) {
	limit, err := NewLimitFromDegrees(cfg.Min, cfg.Max)
	if err != nil {
		return nil, errors.Wrapf(err, "joint %q", cfg.ID)
	}
	return NewJoint(cfg.ID, cfg.Axis, cfg.Offset, limit)
}

// UnmarshalModelJSON will parse the given JSON data into a chain. modelName sets the name of the chain,
// will use the name from the JSON if string is empty.
func UnmarshalModelJSON(jsonData []byte, modelName string) (*Chain, error) {
	// empty data probably means that the caller has no model information
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}
	m := &ModelConfigJSON{}
	if err := json.Unmarshal(jsonData, m); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}
	return m.ParseConfig(modelName)
}

// ParseConfig converts the ModelConfigJSON into a Chain with the name modelName.
func (cfg *ModelConfigJSON) ParseConfig(modelName string) (*Chain, error) {
	if modelName == "" {
		modelName = cfg.Name
	}
	joints := make([]*Joint, 0, len(cfg.Joints))
	for _, jc := range cfg.Joints {
		j, err := jc.ToJoint()
		if err != nil {
			return nil, err
		}
		joints = append(joints, j)
	}
	return NewChain(modelName, joints, spatial.NewPoseFromPoint(cfg.Flange))
}

// ParseModelJSONFile will read a given file and then parse the contained JSON data.
func ParseModelJSONFile(filename, modelName string) (*Chain, error) {
	//nolint:gosec
	jsonData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read json file")
	}
	return UnmarshalModelJSON(jsonData, modelName)
}

// DefaultChain returns a new chain of the built-in six axis model.
func DefaultChain() *Chain {
	c, err := UnmarshalModelJSON(defaultModelJSON, "")
	if err != nil {
		panic(errors.Wrap(err, "embedded model is invalid"))
	}
	return c
}
