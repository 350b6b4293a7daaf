// pkg/idp/cognito.go
package idp

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"go.uber.org/zap"

	"intrale/pkg/config"
)

// Cognito implements Provider against an AWS Cognito user pool.
type Cognito struct {
	cfg    config.Config
	log    *zap.SugaredLogger
	client *cip.Client
}

func NewCognito(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (*Cognito, error) {
	awscfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	return &Cognito{cfg: cfg, log: log, client: cip.NewFromConfig(awscfg)}, nil
}

func (c *Cognito) UserByToken(ctx context.Context, accessToken string) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.IdPTimeout)
	defer cancel()
	out, err := c.client.GetUser(ctx, &cip.GetUserInput{AccessToken: aws.String(accessToken)})
	if err != nil {
		var nae *types.NotAuthorizedException
		if errors.As(err, &nae) {
			return User{}, ErrUnauthorized
		}
		return User{}, err
	}
	u := User{Username: aws.ToString(out.Username), Attributes: map[string]string{}}
	for _, a := range out.UserAttributes {
		u.Attributes[aws.ToString(a.Name)] = aws.ToString(a.Value)
	}
	u.Email = u.Attributes[AttrEmail]
	return u, nil
}

func (c *Cognito) CreateAccount(ctx context.Context, email string, attrs map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.IdPTimeout)
	defer cancel()
	userAttrs := []types.AttributeType{{Name: aws.String(AttrEmail), Value: aws.String(email)}}
	for name, value := range attrs {
		if name == AttrEmail {
			continue
		}
		userAttrs = append(userAttrs, types.AttributeType{Name: aws.String(name), Value: aws.String(value)})
	}
	c.log.Infow("provisioning account on identity provider", "email", email)
	_, err := c.client.AdminCreateUser(ctx, &cip.AdminCreateUserInput{
		UserPoolId:     aws.String(c.cfg.CognitoUserPoolID),
		Username:       aws.String(email),
		UserAttributes: userAttrs,
	})
	if err != nil {
		var uee *types.UsernameExistsException
		if errors.As(err, &uee) {
			return ErrAccountExists
		}
		return err
	}
	return nil
}

func (c *Cognito) AccountExists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.IdPTimeout)
	defer cancel()
	_, err := c.client.AdminGetUser(ctx, &cip.AdminGetUserInput{
		UserPoolId: aws.String(c.cfg.CognitoUserPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		var nfe *types.UserNotFoundException
		if errors.As(err, &nfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *Cognito) HasAnyUser(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.IdPTimeout)
	defer cancel()
	out, err := c.client.ListUsers(ctx, &cip.ListUsersInput{
		UserPoolId: aws.String(c.cfg.CognitoUserPoolID),
		Limit:      aws.Int32(1),
	})
	if err != nil {
		return false, err
	}
	return len(out.Users) > 0, nil
}
