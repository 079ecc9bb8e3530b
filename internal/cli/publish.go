package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaiso/newsletter-email-server/internal/domain"
	"github.com/shaiso/newsletter-email-server/internal/mq"
)

// PublisherFunc открывает Publisher к брокеру. Возвращаемая функция
// закрывает соединение.
type PublisherFunc func() (*mq.Publisher, func(), error)

// NewPublishCmd создаёт группу команд для публикации событий в очереди —
// то, что в production делает app-server.
func NewPublishCmd(publisherFn PublisherFunc, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish pipeline events",
	}

	cmd.AddCommand(
		newPublishArticleCmd(publisherFn, outputFn),
		newPublishWelcomeCmd(publisherFn, outputFn),
	)

	return cmd
}

func newPublishArticleCmd(publisherFn PublisherFunc, outputFn func() *Output) *cobra.Command {
	var articleID int64
	var newsletterID int64

	cmd := &cobra.Command{
		Use:   "article",
		Short: "Publish an article-published event",
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, closeFn, err := publisherFn()
			if err != nil {
				return err
			}
			defer closeFn()

			out := outputFn()

			ev := domain.ArticleEvent{
				ArticleID:    articleID,
				NewsletterID: newsletterID,
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if err := pub.PublishArticlePublished(ctx, ev); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Article event published: article=%d newsletter=%d", articleID, newsletterID))
			out.Print(
				fmt.Sprintf("queue=%s article_id=%d newsletter_id=%d", mq.QueueArticles, articleID, newsletterID),
				ev,
			)
			return nil
		},
	}

	cmd.Flags().Int64Var(&articleID, "article-id", 0, "Article ID")
	cmd.Flags().Int64Var(&newsletterID, "newsletter-id", 0, "Newsletter ID")
	cmd.MarkFlagRequired("article-id")
	cmd.MarkFlagRequired("newsletter-id")

	return cmd
}

func newPublishWelcomeCmd(publisherFn PublisherFunc, outputFn func() *Output) *cobra.Command {
	var name string
	var email string

	cmd := &cobra.Command{
		Use:   "welcome",
		Short: "Publish a welcome-mail event",
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, closeFn, err := publisherFn()
			if err != nil {
				return err
			}
			defer closeFn()

			out := outputFn()

			m := domain.WelcomeMail{
				Name:  name,
				Email: email,
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if err := pub.PublishWelcome(ctx, m); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Welcome event published: %s <%s>", name, email))
			out.Print(
				fmt.Sprintf("queue=%s name=%s email=%s", mq.QueueEmails, name, email),
				m,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Subscriber name")
	cmd.Flags().StringVar(&email, "email", "", "Subscriber email")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")

	return cmd
}
