package processor

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/llm"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/stream"
)

type implProcessor struct {
	cfg         *config.Config
	transformer llm.Transformer
	writer      *stream.Writer
	logger      logger.Logger
}

// New creates a Processor backed by the given transformer.
func New(cfg *config.Config, transformer llm.Transformer, log logger.Logger) Processor {
	return &implProcessor{
		cfg:         cfg,
		transformer: transformer,
		writer:      stream.New(log),
		logger:      log,
	}
}
