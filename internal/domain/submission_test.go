package domain_test

import (
	"testing"

	"github.com/inbar-marom/botverify/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range domain.ValidStatuses {
		assert.True(t, domain.ValidStatus(s), string(s))
	}
	assert.False(t, domain.ValidStatus("archived"))
	assert.False(t, domain.ValidStatus(""))
}

func TestScanResult_AllFiles(t *testing.T) {
	scan := &domain.ScanResult{
		SourceFiles: []domain.SourceFile{{Path: "Bot.cs"}},
		TestFiles:   []domain.SourceFile{{Path: "BotTests.cs"}},
	}
	all := scan.AllFiles()
	assert.Len(t, all, 2)
	assert.Equal(t, "Bot.cs", all[0].Path)
	assert.Equal(t, "BotTests.cs", all[1].Path)
}
