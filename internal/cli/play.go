package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ecodesafios-backend/internal/domain"
	"ecodesafios-backend/internal/session"
)

// NewPlayCmd builds the interactive terminal quiz client.
func NewPlayCmd() *cobra.Command {
	var serverURL, username, password string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz against a running server from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), serverURL, username, password)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the API server")
	cmd.Flags().StringVar(&username, "username", "demo", "username to log in with")
	cmd.Flags().StringVar(&password, "password", "demo", "password to log in with")
	return cmd
}

func runPlay(ctx context.Context, serverURL, username, password string) error {
	client := &apiClient{base: strings.TrimRight(serverURL, "/"), http: &http.Client{Timeout: 10 * time.Second}}

	if err := client.login(ctx, username, password); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	quiz, err := client.randomQuiz(ctx)
	if err != nil {
		return fmt.Errorf("fetch quiz: %w", err)
	}
	sess, err := session.New(quiz)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s — %d perguntas, 100 pontos por resposta correta\n", quiz.Title, len(quiz.Questions))
	fmt.Println("Comandos: a-e = responder, n = próxima, p = anterior, s = enviar, q = sair")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		index, question := sess.Current()
		printQuestion(sess, index, question)

		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.ToLower(strings.TrimSpace(scanner.Text()))

		switch input {
		case "q":
			return nil
		case "n":
			if err := sess.Advance(); err != nil && !errors.Is(err, session.ErrAtLastQuestion) {
				return err
			}
		case "p":
			if err := sess.Retreat(); err != nil && !errors.Is(err, session.ErrAtFirstQuestion) {
				return err
			}
		case "s":
			if !sess.AllAnswered() {
				fmt.Printf("Responda todas as perguntas antes de enviar (%d/%d).\n", sess.AnsweredCount(), len(quiz.Questions))
				continue
			}
			result, err := sess.Submit(ctx, client.submitQuiz)
			if err != nil {
				fmt.Printf("Erro ao enviar quiz: %v\n", err)
				return err
			}
			fmt.Printf("\nQuiz concluído! Acertos: %d/%d — %d pontos ganhos.\n", result.Score, result.TotalQuestions, result.PointsEarned)
			return nil
		default:
			if len(input) == 1 && input[0] >= 'a' && input[0] < 'a'+byte(len(question.Options)) {
				if err := sess.SelectAnswer(index, int(input[0]-'a')); err != nil {
					fmt.Printf("Resposta inválida: %v\n", err)
				}
			} else {
				fmt.Println("Comando desconhecido.")
			}
		}
	}
}

func printQuestion(sess *session.Session, index int, question domain.QuizQuestion) {
	quiz := sess.Quiz()
	fmt.Printf("\nPergunta %d de %d: %s\n", index+1, len(quiz.Questions), question.Question)
	selected := sess.Answer(index)
	for i, option := range question.Options {
		marker := " "
		if i == selected {
			marker = "*"
		}
		fmt.Printf(" %s %c) %s\n", marker, 'a'+i, option)
	}
}

// apiClient is the thin REST client behind the play command.
type apiClient struct {
	base  string
	http  *http.Client
	token string
}

func (c *apiClient) login(ctx context.Context, username, password string) error {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

func (c *apiClient) randomQuiz(ctx context.Context) (domain.Quiz, error) {
	var quiz domain.Quiz
	err := c.do(ctx, http.MethodGet, "/api/quiz/random", nil, &quiz)
	return quiz, err
}

func (c *apiClient) submitQuiz(ctx context.Context, sub domain.QuizSubmission) (domain.QuizResult, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return domain.QuizResult{}, err
	}
	var result domain.QuizResult
	err = c.do(ctx, http.MethodPost, "/api/quiz/submit", body, &result)
	return result, err
}

func (c *apiClient) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return fmt.Errorf("%s %s: %s", method, path, apiErr.Message)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
