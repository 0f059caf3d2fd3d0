package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/noahfaas/relationship-y/internal/client"
	"github.com/noahfaas/relationship-y/internal/models"

	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a room and print the code to share with your partner",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			created, err := c.CreateRoom()
			if err != nil {
				return err
			}
			fmt.Printf("room code: %s\n", created.Room.Code)
			fmt.Printf("first question: %s\n", created.InitialQuestion.Text)
			fmt.Printf("\nshare the code and agree on a passphrase out of band.\n")
			return nil
		},
	}
}

func newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the room's current question",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, room, err := clientAndRoom()
			if err != nil {
				return err
			}
			question, err := c.CurrentQuestion(room)
			if err != nil {
				return err
			}
			fmt.Printf("#%d %s\n", question.ID, question.Text)
			return nil
		},
	}
}

func newAskCmd() *cobra.Command {
	var random bool
	cmd := &cobra.Command{
		Use:   "ask [text...]",
		Short: "Ask your partner a question (or --random for one from the bank)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, room, err := clientAndRoom()
			if err != nil {
				return err
			}
			var question *models.Question
			if random {
				if len(args) > 0 {
					return errors.New("--random takes no question text")
				}
				question, err = c.AskRandom(room)
			} else {
				text := strings.TrimSpace(strings.Join(args, " "))
				if text == "" {
					return errors.New("question text required (or use --random)")
				}
				question, err = c.Ask(room, text)
			}
			if err != nil {
				return err
			}
			fmt.Printf("asked #%d: %s\n", question.ID, question.Text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&random, "random", false, "draw a question from the bank")
	return cmd
}

func newAnswerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "answer <text...>",
		Short: "Answer the current question; the text is encrypted before it leaves this device",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, room, err := clientAndRoom()
			if err != nil {
				return err
			}
			passphrase, err := requirePassphrase()
			if err != nil {
				return err
			}
			question, err := c.CurrentQuestion(room)
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			triggered, err := c.SubmitAnswer(question.ID, text, passphrase)
			if err != nil {
				return err
			}
			if triggered {
				fmt.Println("that completed the pair. run `rely show` to reveal.")
				return nil
			}
			fmt.Printf("answered #%d. run `rely wait` to know when both of you are in.\n", question.ID)
			return nil
		},
	}
}

func newWaitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wait",
		Short: "Wait until both participants answered the current question",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, room, err := clientAndRoom()
			if err != nil {
				return err
			}
			question, err := c.CurrentQuestion(room)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			fmt.Printf("waiting on #%d: %s\n", question.ID, question.Text)
			if err := c.WaitForRevealHinted(ctx, room, question.ID, cfg.interval); err != nil {
				return err
			}
			fmt.Println("both answers are in. run `rely show` to reveal.")
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	var questionID uint
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Reveal the answers to the current question (decrypted locally)",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, room, err := clientAndRoom()
			if err != nil {
				return err
			}
			passphrase, err := requirePassphrase()
			if err != nil {
				return err
			}
			id := questionID
			if id == 0 {
				question, err := c.CurrentQuestion(room)
				if err != nil {
					return err
				}
				id = question.ID
			}
			answers, err := c.FetchAnswers(id, passphrase)
			if err != nil {
				return err
			}
			if len(answers) == 0 {
				fmt.Println("no answers yet.")
				return nil
			}
			for _, answer := range answers {
				who := "them"
				if answer.Mine {
					who = "you"
				}
				if answer.Err != nil {
					fmt.Printf("%s: (passphrases don't match)\n", who)
					continue
				}
				fmt.Printf("%s: %s\n", who, answer.Text)
			}
			return nil
		},
	}
	cmd.Flags().UintVar(&questionID, "question", 0, "reveal a past question by id instead of the current one")
	return cmd
}

func newInboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inbox",
		Short: "Questions your partner answered that still wait on you",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, room, err := clientAndRoom()
			if err != nil {
				return err
			}
			questions, err := c.Inbox(room)
			if err != nil {
				return err
			}
			printQuestions(questions, "inbox is empty.")
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Questions both of you answered, ready to reveal any time",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, room, err := clientAndRoom()
			if err != nil {
				return err
			}
			questions, err := c.History(room)
			if err != nil {
				return err
			}
			printQuestions(questions, "nothing revealed yet.")
			return nil
		},
	}
}

func clientAndRoom() (*client.Client, string, error) {
	room, err := requireRoom()
	if err != nil {
		return nil, "", err
	}
	c, err := newClient()
	if err != nil {
		return nil, "", err
	}
	return c, room, nil
}

func printQuestions(questions []models.Question, empty string) {
	if len(questions) == 0 {
		fmt.Println(empty)
		return
	}
	for _, question := range questions {
		fmt.Printf("#%d %s\n", question.ID, question.Text)
	}
}
