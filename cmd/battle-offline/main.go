package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/montplusa/mind-reader/pkg/ai"
	"github.com/montplusa/mind-reader/pkg/config"
	"github.com/montplusa/mind-reader/pkg/game"
	"github.com/montplusa/mind-reader/pkg/opponent"
)

// 指定されたディレクトリ内の同じプレフィックスを持つファイルの最大連番を取得する
func findMaxSequenceNumber(dir, prefix string) (int, error) {
	// ディレクトリが存在しない場合は0を返す
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	// プレフィックス_NNNNN.json の形式にマッチする正規表現
	pattern := regexp.MustCompile(fmt.Sprintf(`^%s_(\d{5})\.json$`, regexp.QuoteMeta(prefix)))
	maxSeq := 0

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		matches := pattern.FindStringSubmatch(file.Name())
		if len(matches) == 2 {
			seq, err := strconv.Atoi(matches[1])
			if err != nil {
				continue
			}
			maxSeq = max(maxSeq, seq)
		}
	}

	return maxSeq, nil
}

// 対戦タスクの構造体
type battleTask struct {
	gameIndex int
	seqNum    int
	seed      int64
}

// 対戦結果の構造体
type battleResult struct {
	gameIndex int
	result    game.BattleResult
	err       error
}

type workerConfig struct {
	cfg          config.Config
	opponentName string
	outputDir    string
	outputPrefix string
	noOutput     bool
}

// 1 試合分: エンジンと相手を生成して対戦させる
func playBattle(wc workerConfig, seed int64) (game.BattleResult, error) {
	rng := rand.New(rand.NewSource(seed))
	engine, err := ai.New(wc.cfg, rng)
	if err != nil {
		return game.BattleResult{}, err
	}
	opp, err := opponent.New(wc.opponentName, rand.New(rand.NewSource(seed+1)))
	if err != nil {
		return game.BattleResult{}, err
	}
	return game.NewGameRunner(engine, opp, wc.cfg.TotalTurns).Run()
}

// ワーカー関数
func worker(id int, tasks <-chan battleTask, results chan<- battleResult, wc workerConfig, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range tasks {
		result, err := playBattle(wc, task.seed)
		if err != nil {
			results <- battleResult{gameIndex: task.gameIndex, err: err}
			continue
		}

		if !wc.noOutput {
			// 結果をJSONに変換（インデントなし）
			jsonData, err := json.Marshal(result)
			if err != nil {
				log.Errorf("JSONの変換に失敗しました: %v", err)
			} else {
				// ファイル名の生成（5桁のゼロ詰め連番）
				filename := filepath.Join(wc.outputDir, fmt.Sprintf("%s_%05d.json", wc.outputPrefix, task.seqNum))
				if err := os.WriteFile(filename, jsonData, 0644); err != nil {
					log.Errorf("ファイルの書き込みに失敗しました: %v", err)
				}
			}
		}

		results <- battleResult{gameIndex: task.gameIndex, result: result}
		log.Debugf("対戦 %d が完了しました（ワーカー %d）", task.gameIndex, id)
	}
}

// wilsonCI95 は勝率の 95% 信頼区間
func wilsonCI95(wins, total int) (low, hi float64) {
	if total <= 0 {
		return 0, 1
	}
	z := 1.96
	n := float64(total)
	p := float64(wins) / n
	den := 1 + (z*z)/n
	center := p + (z*z)/(2*n)
	half := z * math.Sqrt((p*(1-p))/n+(z*z)/(4*n*n))
	return (center - half) / den, (center + half) / den
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg.ApplyLogLevel()

	// コマンドライン引数の解析
	outputDir := flag.String("output", "output", "出力ディレクトリ名")
	outputPrefix := flag.String("output-prefix", "", "出力ファイル名のプレフィックス")
	noOutput := flag.Bool("no-output", false, "出力しない")
	games := flag.Int("games", 1, "実行する試合数")
	numWorkers := flag.Int("workers", runtime.NumCPU(), "ワーカー数")
	engineName := flag.String("engine", cfg.Engine, "予測エンジン (ensemble, bush-mosteller, random)")
	opponentName := flag.String("opponent", "random", "模擬プレイヤー (random, biased, periodic, wsls, neural)")
	turns := flag.Int("turns", cfg.TotalTurns, "1 試合のターン数 (偶数)")
	seed := flag.Int64("seed", cfg.Seed, "乱数シード (0 なら時刻から)")
	flag.Parse()

	cfg.Engine = *engineName
	cfg.TotalTurns = *turns
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	// 出力プレフィックスが指定されていない場合はエラー
	if !*noOutput && *outputPrefix == "" {
		fmt.Println("エラー: --output-prefix は必須です")
		flag.Usage()
		os.Exit(1)
	}

	if !*noOutput {
		// 出力ディレクトリの作成
		if err := os.MkdirAll(*outputDir, 0755); err != nil {
			log.Fatalf("出力ディレクトリの作成に失敗しました: %v", err)
		}
	}

	// 既存ファイルの最大連番を取得
	maxSeq, err := findMaxSequenceNumber(*outputDir, *outputPrefix)
	if err != nil {
		log.Warnf("既存ファイルの確認中にエラーが発生しました: %v", err)
	}
	startSeq := maxSeq + 1

	log.WithFields(log.Fields{
		"engine":   cfg.Engine,
		"opponent": *opponentName,
		"games":    *games,
		"workers":  *numWorkers,
		"turns":    cfg.TotalTurns,
		"seed":     *seed,
	}).Info("オフライン対戦を開始します")

	wc := workerConfig{
		cfg:          cfg,
		opponentName: *opponentName,
		outputDir:    *outputDir,
		outputPrefix: *outputPrefix,
		noOutput:     *noOutput,
	}

	// チャネルの作成
	tasks := make(chan battleTask, *games)
	results := make(chan battleResult, *games)

	// ワーカープールの作成
	var wg sync.WaitGroup
	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go worker(i, tasks, results, wc, &wg)
	}

	// タスクの送信
	go func() {
		for i := 0; i < *games; i++ {
			tasks <- battleTask{
				gameIndex: i,
				seqNum:    startSeq + i,
				seed:      *seed + int64(2*i),
			}
		}
		close(tasks)
	}()

	// 結果の収集
	var machineWins, userWins, failed, predicted, turnsPlayed int
	for i := 0; i < *games; i++ {
		r := <-results
		if r.err != nil {
			failed++
			log.Errorf("対戦 %d に失敗しました: %v", r.gameIndex, r.err)
			continue
		}
		switch r.result.Score.Winner {
		case game.Machine:
			machineWins++
		case game.User:
			userWins++
		}
		for t, m := range r.result.Moves {
			if r.result.Predictions[t] == m {
				predicted++
			}
		}
		turnsPlayed += len(r.result.Moves)
	}

	// すべてのワーカーの終了を待つ
	wg.Wait()

	played := machineWins + userWins
	low, hi := wilsonCI95(machineWins, played)
	fmt.Println("すべての対戦が完了しました")
	fmt.Printf("勝利数: machine: %d, user: %d, 失敗: %d\n", machineWins, userWins, failed)
	if played > 0 {
		fmt.Printf("machine 勝率: %.1f%% (95%% CI %.1f%%-%.1f%%)\n",
			100*float64(machineWins)/float64(played), 100*low, 100*hi)
	}
	if turnsPlayed > 0 {
		fmt.Printf("予測的中率: %.1f%% (%d/%d)\n", 100*float64(predicted)/float64(turnsPlayed), predicted, turnsPlayed)
	}
}
