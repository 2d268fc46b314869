package learn

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	deep "github.com/patrikeh/go-deep"

	"gambit/game"
)

// valueScale maps the network's [-1, 1] output onto centipawns: a predicted
// certain win is worth ten pawns to the search, still far below MateValue.
const valueScale = 10 * game.PawnValue

// Config defines the value network architecture and, when loaded from disk,
// its weights.
type Config struct {
	Name         string        `json:"name"`
	HiddenLayers []int         `json:"hidden_layers"`
	LearningRate float64       `json:"learning_rate"`
	Weights      [][][]float64 `json:"weights,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Name:         "default",
		HiddenLayers: []int{64, 32},
		LearningRate: 0.01,
	}
}

// Network wraps a go-deep regression net behind the evaluator contract.
type Network struct {
	neural *deep.Neural
	config Config
}

func NewNetwork(config Config) *Network {
	layout := append(append([]int{}, config.HiddenLayers...), 1)
	neural := deep.NewNeural(&deep.Config{
		Inputs:     FeatureSize,
		Layout:     layout,
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeRegression,
		Weight:     deep.NewNormal(0.0, 0.1),
		Bias:       true,
	})
	if config.Weights != nil {
		neural.ApplyWeights(config.Weights)
	}
	return &Network{neural: neural, config: config}
}

// Load reads a network saved by Save.
func Load(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}
	return NewNetwork(config), nil
}

// Save writes the architecture and current weights as JSON.
func (n *Network) Save(path string) error {
	config := n.config
	config.Weights = n.neural.Weights()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("save network: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save network: %w", err)
	}
	return nil
}

func (n *Network) Name() string { return n.config.Name }

// Predict returns the raw network value for a position, from White's
// perspective.
func (n *Network) Predict(pos game.Position) float64 {
	return n.neural.Predict(Features(pos))[0]
}

// Evaluator adapts the network to the search core's evaluator contract.
// Terminal positions keep their exact scores so search mate handling is
// unaffected by whatever the network believes.
func (n *Network) Evaluator() game.Evaluate {
	return func(pos game.Position) int {
		if pos.IsCheckmate() {
			if pos.SideToMove() == game.White {
				return -game.MateValue
			}
			return game.MateValue
		}
		if pos.IsStalemate() || pos.IsDraw() {
			return 0
		}
		return int(math.Round(n.Predict(pos) * valueScale))
	}
}
