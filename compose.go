package golden

import (
	"github.com/irlab/golden/pipeline"
	"github.com/irlab/golden/rank"
	"github.com/irlab/golden/rewrite"
)

// Compose builds the retrieval pipeline of a configuration over an index.
func Compose(index *rank.Index, cfg Configuration, params rewrite.Parameters) (pipeline.Sequence, error) {
	cfg = cfg.Normalise()
	if err := cfg.validateOptions(); err != nil {
		return nil, err
	}

	first, err := rank.NewModelRetriever(index, cfg.FirstModel, cfg.Limit)
	if err != nil {
		return nil, err
	}

	switch cfg.Strategy {
	case RetrieveExpandRetrieve:
		switch cfg.Expansion {
		case rewrite.NoExpansion:
			return pipeline.Sequence{rewrite.Tokenise{}, first}, nil
		case rewrite.Bo1Expansion, rewrite.RM3Expansion:
			expansion, err := rewrite.NewQueryExpansion(index, cfg.Expansion, params)
			if err != nil {
				return nil, err
			}
			last, err := rank.NewModelRetriever(index, cfg.LastModel, cfg.Limit)
			if err != nil {
				return nil, err
			}
			seq := pipeline.Sequence{first, rewrite.Tokenise{}, expansion, last}
			switch cfg.Reformulation {
			case pipeline.WithReformulation:
				seq = seq.Then(rewrite.Reset{})
			case pipeline.NoReformulation:
			default:
				return nil, cfg.Reformulation.Validate()
			}
			return seq, nil
		}
		return nil, cfg.Expansion.Validate()

	case PreExpansion:
		switch cfg.Expansion {
		case rewrite.NoExpansion:
			return pipeline.Sequence{first}, nil
		case rewrite.Bo1Expansion:
			expansion, err := rewrite.NewQueryExpansion(index, cfg.Expansion, params)
			if err != nil {
				return nil, err
			}
			return pipeline.Sequence{first, expansion, first}, nil
		case rewrite.RM3Expansion:
			expansion, err := rewrite.NewQueryExpansion(index, cfg.Expansion, params)
			if err != nil {
				return nil, err
			}
			return pipeline.Sequence{first, expansion, first, first}, nil
		}
		return nil, cfg.Expansion.Validate()
	}
	return nil, cfg.Strategy.Validate()
}
