package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pradprat/poker-in-place/internal/fileutil"
	"github.com/pradprat/poker-in-place/internal/game"
	"github.com/pradprat/poker-in-place/internal/gameid"
	"github.com/pradprat/poker-in-place/internal/phh"
	"github.com/pradprat/poker-in-place/internal/simulator"
)

// SimulateCmd plays whole games between bots at a configured table.
type SimulateCmd struct {
	Table       string `help:"Table from the config file" default:"main"`
	Games       int    `short:"n" help:"Number of games to play" default:"100"`
	Players     int    `short:"p" help:"Bots per game" default:"6"`
	Seed        int64  `help:"Seed for the whole run (0 = from the clock)" default:"0"`
	Agent       string `help:"Bot strategy" enum:"call,rand,maniac" default:"rand"`
	MaxRebuys   int    `help:"Rebuys each bot takes when the table allows them" default:"1"`
	MaxSteps    int    `help:"Transitions before a game is abandoned" default:"100000"`
	Concurrency int    `short:"j" help:"Games played in parallel (0 = GOMAXPROCS)" default:"0"`
	PHHDir      string `name:"phh-dir" help:"Write every paid hand as PHH under this directory" type:"path"`
}

func (cmd *SimulateCmd) Run(globals *Globals) error {
	cfg, logger, err := globals.load()
	if err != nil {
		return err
	}
	table, ok := cfg.Table(cmd.Table)
	if !ok {
		return fmt.Errorf("unknown table %s", cmd.Table)
	}
	agent, err := simulator.NewAgent(cmd.Agent)
	if err != nil {
		return err
	}

	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runID := gameid.Generate()
	logger = logger.With("run", runID)

	sc := simulator.Config{
		Games:       cmd.Games,
		Players:     cmd.Players,
		Seed:        seed,
		MaxSteps:    cmd.MaxSteps,
		MaxRebuys:   cmd.MaxRebuys,
		Concurrency: cmd.Concurrency,
		Agent:       agent,
		GameOptions: table.Options(),
		Logger:      logger.WithPrefix("simulator"),
	}
	if cmd.PHHDir != "" {
		dir := filepath.Join(cmd.PHHDir, runID)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		sc.OnHand = func(g *game.Game, h *game.Hand) error {
			hh, err := phh.FromHand(g, h)
			if err != nil {
				return err
			}
			data, err := phh.EncodeToBytes(hh)
			if err != nil {
				return err
			}
			return fileutil.WriteFileAtomic(filepath.Join(dir, h.ID+".phh"), data, 0o644)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("simulating", "table", table.Name, "games", cmd.Games, "players", cmd.Players, "seed", seed)
	start := time.Now()
	report, err := simulator.New(sc).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s: %d games, %d hands", table.Name, len(report.Games), report.Hands)))
	rows := [][]string{
		{"hands", strconv.Itoa(report.Hands)},
		{"showdowns", strconv.Itoa(report.Showdowns)},
		{"rebuys", strconv.Itoa(report.Rebuys)},
		{"largest pot", strconv.FormatInt(report.MaxPot, 10)},
		{"hands per game", fmt.Sprintf("%.1f", float64(report.Hands)/float64(max(len(report.Games), 1)))},
		{"elapsed", time.Since(start).Round(time.Millisecond).String()},
	}
	fmt.Println(renderTable([]string{"", ""}, rows, -1))
	logger.Info("every pot conserved", "hands", report.Hands)
	return nil
}
