package agent

import (
	"fmt"
	"reflect"
)

// Type represents a specific type of an agent Config.
// Config's with this type can create Agents of the corresponding type.
type Type string

const (
	// Tabular methods
	EGreedyQLearningTabular Type = "EGreedyQLearning-Tabular"
)

// Registered types with the package. Once a Type has been registered
// with this map, a Config with that type can be deserialized.
//
// No Type's are registered wtih this package upon initialization.
// Each separate package is in charge of registering its Type with
// the package separately to avoid circular imports.
var registeredTypes map[Type]reflect.Type

func init() {
	registeredTypes = make(map[Type]reflect.Type)
}

// Register registers an agent's Type with a concrete Config type
// so that upon deserialization of a TypedConfig, Configs of
// type agentType are deserialized into the concrete type of config.
func Register(agentType Type, config Config) {
	registeredTypes[agentType] = reflect.TypeOf(config)
}

// registered returns the concrete Config type registered for agentType
func registered(agentType Type) (reflect.Type, error) {
	ty, found := registeredTypes[agentType]
	if !found {
		return nil, fmt.Errorf("no config registered for agent type %q",
			agentType)
	}
	return ty, nil
}
