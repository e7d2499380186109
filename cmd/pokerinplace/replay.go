package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pradprat/poker-in-place/internal/fileutil"
	"github.com/pradprat/poker-in-place/internal/game"
	"github.com/pradprat/poker-in-place/internal/phh"
)

// ReplayCmd checks pot conservation for every paid hand of a saved game.
type ReplayCmd struct {
	File   string `arg:"" name:"file" help:"Path to a JSON game snapshot" type:"existingfile"`
	PHHDir string `name:"phh-dir" help:"Also export each paid hand as PHH under this directory" type:"path"`
}

func (cmd *ReplayCmd) Run(globals *Globals) error {
	_, logger, err := globals.load()
	if err != nil {
		return err
	}
	g, err := loadGame(cmd.File)
	if err != nil {
		return err
	}
	if cmd.PHHDir != "" {
		if err := os.MkdirAll(cmd.PHHDir, 0o755); err != nil {
			return err
		}
	}

	var paid, failed int
	for _, h := range g.Hands {
		if !h.PayoutsApplied {
			logger.Debug("hand in progress", "hand", h.ID)
			continue
		}
		paid++
		if err := game.ValidateHand(h); err != nil {
			failed++
			logger.Error("sum < 0", "hand", h.ID, "err", err)
			continue
		}
		if cmd.PHHDir == "" {
			continue
		}
		hh, err := phh.FromHand(g, h)
		if err != nil {
			return err
		}
		data, err := phh.EncodeToBytes(hh)
		if err != nil {
			return err
		}
		if err := fileutil.WriteFileAtomic(filepath.Join(cmd.PHHDir, h.ID+".phh"), data, 0o644); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d hands did not conserve the pot", failed, paid)
	}
	if paid == 0 {
		return errors.New("no paid hands to replay")
	}
	logger.Info("replayed", "game", g.ID, "hands", paid)
	return nil
}
