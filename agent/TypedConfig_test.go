package agent

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/samuelfneumann/qtaxi/environment"
)

const fakeType Type = "Fake"

type fakeConfig struct {
	LearningRate float64
}

func (f fakeConfig) CreateAgent(environment.Environment, uint64) (Agent,
	error) {
	return nil, errors.New("fake agent")
}

func (f fakeConfig) ValidAgent(Agent) bool { return false }
func (f fakeConfig) Validate() error { return nil }
func (f fakeConfig) Type() Type { return fakeType }

func TestTypedConfigJSON(t *testing.T) {
	Register(fakeType, fakeConfig{})

	data, err := json.Marshal(NewTypedConfig(fakeConfig{LearningRate: 0.25}))
	if err != nil {
		t.Fatal(err)
	}

	var typed TypedConfig
	if err := json.Unmarshal(data, &typed); err != nil {
		t.Fatalf("could not unmarshal %s: %v", data, err)
	}

	if typed.Type != fakeType {
		t.Errorf("type = %v, want %v", typed.Type, fakeType)
	}
	c, ok := typed.Config.(fakeConfig)
	if !ok {
		t.Fatalf("config has type %T, want fakeConfig", typed.Config)
	}
	if c.LearningRate != 0.25 {
		t.Errorf("learning rate = %v, want 0.25", c.LearningRate)
	}
}

func TestTypedConfigUnregistered(t *testing.T) {
	data := []byte(`{"Type": "NoSuchAgent", "Config": {}}`)

	var typed TypedConfig
	if err := json.Unmarshal(data, &typed); err == nil {
		t.Error("unmarshalling an unregistered type should fail")
	}
}
