package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"joybot/cli"
	"joybot/communication"
	"joybot/config"
	"joybot/joy"
	"joybot/motion"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [flags] <command> [param]\n", os.Args[0])
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  forward|backward [N步|N米]    前进或后退")
	fmt.Fprintln(w, "  turn_left|turn_right [N度]    左转或右转")
	fmt.Fprintln(w, "  walk_in_place [N秒]           原地踏步")
	fmt.Fprintln(w, "  stop                          停止踏步")
	fmt.Fprintln(w, "  gesture <name>                固定动作")
	fmt.Fprintln(w, "  topics                        列出 ROS 话题")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run 执行一条命令并返回退出码。连接在返回前关闭，调用方再退出进程。
func run(argv []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("joyctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	cfg, err := cli.ParseConfigFrom(fs, argv)
	if err != nil {
		return 2
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "❌ 配置无效: %v\n", err)
		return 2
	}

	args := fs.Args()
	if len(args) < 1 {
		usage(stderr)
		return 1
	}
	command := args[0]
	param := ""
	if len(args) > 1 {
		param = args[1]
	}

	comm := communication.NewRosbridgeClient(cfg.RosbridgeURL, cfg.Timeout)
	defer func() {
		if err := comm.Close(); err != nil {
			log.Printf("⚠️ 关闭 rosbridge 连接失败: %v", err)
		}
	}()
	channel := joy.NewTopicChannel(comm, cfg.JoyTopic, cfg.Timeout)
	actions := joy.NewActions(channel, cfg.WalkButton, cfg.StopButton)
	seq := motion.NewSequencer(actions)

	switch command {
	case "stop":
		text := seq.StopWalkInPlace()
		fmt.Fprintln(stdout, text)
		// 等待延迟松开
		time.Sleep(2 * motion.PhaseGap)
		if text != motion.StopSentText {
			return 1
		}
	case "gesture":
		gestures := joy.NewGestureManager(actions)
		g, ok := gestures.Get(param)
		if !ok {
			fmt.Fprintf(stderr, "Unknown gesture: %q\n", param)
			return 1
		}
		text, _ := gestures.Perform(g.Name)
		fmt.Fprintln(stdout, text)
		time.Sleep(g.ReleaseAfter + motion.PhaseGap)
	case "topics":
		if err := listTopics(stdout, comm, cfg.Timeout); err != nil {
			fmt.Fprintf(stderr, "❌ 获取话题失败: %v\n", err)
			return 1
		}
	default:
		kind, ok := motion.ParseKind(command)
		if !ok || kind == motion.Idle {
			fmt.Fprintf(stderr, "Invalid command: %s\n", command)
			return 1
		}
		text, err := seq.Start(kind, param)
		fmt.Fprintln(stdout, text)
		if err != nil {
			return 1
		}
		waitIdle(seq)
	}
	return 0
}

func listTopics(w io.Writer, comm communication.Communicator, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	topics, err := comm.GetTopics(ctx)
	if err != nil {
		return err
	}
	for _, t := range topics {
		fmt.Fprintf(w, "%s\t%s\n", t.Name, t.Type)
	}
	return nil
}

// waitIdle 轮询直到动作完成；收到中断信号时放弃等待，已发送的动作不会被撤回
func waitIdle(seq *motion.Sequencer) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-sigChan:
			log.Println("⚠️ 放弃等待，机器人可能仍在执行动作")
			return
		case <-ticker.C:
			if !seq.IsRunning() {
				log.Println("✅ 动作完成")
				return
			}
		}
	}
}
