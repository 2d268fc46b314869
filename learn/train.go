package learn

import (
	"context"
	"fmt"

	"github.com/patrikeh/go-deep/training"
	"github.com/rs/zerolog/log"

	"gambit/engine"
	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"
	"gambit/searcher/agent"
)

// TrainConfig controls self-play training.
type TrainConfig struct {
	Episodes    int // self-play games per training run
	Iterations  int // SGD passes over the collected examples
	SearchDepth int
	MaxMoves    int
	Seed        uint64
}

func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Episodes:    20,
		Iterations:  50,
		SearchDepth: 2,
		MaxMoves:    120,
		Seed:        1,
	}
}

// Train improves the network by self-play: an alpha-beta agent using the
// network plays a random-move opponent, every position of the game is
// labelled with the final outcome from White's perspective, and the network
// regresses onto those labels.
func Train(ctx context.Context, network *Network, config TrainConfig) error {
	if config.Episodes <= 0 {
		return fmt.Errorf("train: episodes must be positive")
	}

	var examples training.Examples
	for episode := 0; episode < config.Episodes; episode++ {
		learner := agent.NewSearchAgent(searcher.NewAlphaBeta(),
			agent.WithDepth(config.SearchDepth),
			agent.WithEvaluator(network.Evaluator()),
			agent.WithName("learner"))
		opponent := agent.NewRandomAgent(config.Seed + uint64(episode))

		// Alternate colors so the outcome labels are not one-sided.
		white, black := agent.Agent(learner), agent.Agent(opponent)
		if episode%2 == 1 {
			white, black = black, white
		}

		e := engine.NewLocal(white, black, engine.WithMaxMoves(config.MaxMoves))
		gameMetric, moveMetrics, err := e.Run(ctx)
		if err != nil {
			return fmt.Errorf("train episode %d: %w", episode, err)
		}

		episodeExamples, err := gameExamples(gameMetric, moveMetrics)
		if err != nil {
			return fmt.Errorf("train episode %d: %w", episode, err)
		}
		examples = append(examples, episodeExamples...)

		log.Info().
			Int("episode", episode+1).
			Str("outcome", gameMetric.Outcome).
			Int("examples", len(examples)).
			Msg("self-play episode finished")
	}

	examples.Shuffle()
	trainer := training.NewTrainer(training.NewSGD(network.config.LearningRate, 0.5, 0.0, false), 0)
	trainer.Train(network.neural, examples, examples, config.Iterations)
	log.Info().Int("examples", len(examples)).Msg("training complete")
	return nil
}

// gameExamples replays a finished game and labels every position with the
// final outcome.
func gameExamples(gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric) (training.Examples, error) {
	reward := 0.0
	switch gameMetric.Outcome {
	case engine.OutcomeWhiteWins:
		reward = 1.0
	case engine.OutcomeBlackWins:
		reward = -1.0
	}

	board := game.NewBoard()
	examples := make(training.Examples, 0, len(moveMetrics))
	for _, m := range moveMetrics {
		examples = append(examples, training.Example{
			Input:    Features(board),
			Response: []float64{reward},
		})
		if err := board.ApplyUCI(m.Move); err != nil {
			return nil, fmt.Errorf("replay move %d (%s): %w", m.Step, m.Move, err)
		}
	}
	return examples, nil
}
