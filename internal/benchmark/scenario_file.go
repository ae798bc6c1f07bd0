package benchmark

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kakao/chanbench/pkg/util/units"
)

type scenarioFile struct {
	Scenarios []scenarioEntry `yaml:"scenarios"`
}

type scenarioEntry struct {
	Producers int    `yaml:"producers"`
	Messages  int    `yaml:"messages"`
	Payload   string `yaml:"payload"`
	Kind      string `yaml:"kind"`
	Capacity  int    `yaml:"capacity"`
}

func (ent scenarioEntry) scenario() (Scenario, error) {
	sc := Scenario{
		Producers:           ent.Producers,
		MessagesPerProducer: ent.Messages,
		Kind:                ent.Kind,
		Capacity:            ent.Capacity,
	}
	if len(ent.Payload) > 0 {
		size, err := units.FromByteSizeString(ent.Payload)
		if err != nil {
			return Scenario{}, fmt.Errorf("payload: %w", err)
		}
		sc.PayloadSize = int(size)
	}
	return sc, sc.Validate()
}

// LoadScenarios reads scenarios from a YAML file:
//
//	scenarios:
//	  - producers: 10
//	    messages: 10
//	    payload: 100B
//	    kind: unbounded
//	    capacity: 0
//
// Unknown fields are rejected.
func LoadScenarios(path string) ([]Scenario, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	scenarios, err := DecodeScenarios(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenarios, nil
}

// DecodeScenarios decodes scenarios in the format LoadScenarios reads.
func DecodeScenarios(r io.Reader) ([]Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file scenarioFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no scenarios")
		}
		return nil, err
	}
	if len(file.Scenarios) == 0 {
		return nil, errors.New("no scenarios")
	}

	scenarios := make([]Scenario, 0, len(file.Scenarios))
	for idx, ent := range file.Scenarios {
		sc, err := ent.scenario()
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", idx, err)
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}
