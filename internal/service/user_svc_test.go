package service

import (
	"context"
	"errors"
	"testing"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/model"
)

// ==================== 注册 / 登录 ====================

func TestUserService_Register(t *testing.T) {
	db := setupTestDB(t)
	dispatcher := &fakeDispatcher{}
	svc := newTestUserService(db, dispatcher)

	info, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username:  "ivan",
		Password:  "password123",
		Email:     "ivan@example.com",
		FirstName: "Иван",
		UserType:  model.UserTypeBuyer,
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if info.Username != "ivan" || info.UserType != model.UserTypeBuyer {
		t.Errorf("user = %+v", info)
	}

	// 注册触发一封确认邮件
	if dispatcher.count() != 1 {
		t.Fatalf("邮件数 = %d, want 1", dispatcher.count())
	}
	if mail := dispatcher.last(); mail.To != "ivan@example.com" {
		t.Errorf("收件人 = %s, want ivan@example.com", mail.To)
	}

	// 密码以哈希存储
	var user model.SysUser
	db.Where("username = ?", "ivan").First(&user)
	if user.Password == "password123" {
		t.Error("密码不得以明文存储")
	}
}

func TestUserService_RegisterDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db, &fakeDispatcher{})

	req := &dto.RegisterRequest{Username: "ivan", Password: "password123", Email: "ivan@example.com"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation (用户名已存在)", err)
	}
}

func TestUserService_LoginAndRefresh(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db, &fakeDispatcher{})
	createTestUser(t, db, "ivan", model.UserTypeBuyer)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "ivan", Password: "password123"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("登录应返回 token 对")
	}

	refreshed, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	if err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("刷新应返回新的 access token")
	}

	// access token 不能当 refresh token 用
	if _, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: resp.AccessToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("用 access token 刷新 err = %v, want ErrInvalidToken", err)
	}
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db, &fakeDispatcher{})
	createTestUser(t, db, "ivan", model.UserTypeBuyer)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "ivan", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUserService_LoginDisabledUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db, &fakeDispatcher{})
	user := createTestUser(t, db, "ivan", model.UserTypeBuyer)
	db.Model(user).Update("is_active", false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "ivan", Password: "password123"})
	if !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("err = %v, want ErrUserDisabled", err)
	}
}

// ==================== 联系方式 ====================

func TestUserService_Contacts(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db, &fakeDispatcher{})
	user := createTestUser(t, db, "ivan", model.UserTypeBuyer)
	other := createTestUser(t, db, "petr", model.UserTypeBuyer)

	contact, err := svc.AddContact(context.Background(), user.ID,
		&dto.ContactRequest{Type: "phone", Value: "+7 900 000-00-00"})
	if err != nil {
		t.Fatalf("新增联系方式失败: %v", err)
	}

	contacts, err := svc.ListContacts(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("联系方式列表失败: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("联系方式数 = %d, want 1", len(contacts))
	}

	// 他人不能删我的联系方式
	if err := svc.DeleteContact(context.Background(), other.ID, contact.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("跨用户删除 err = %v, want ErrPermissionDenied", err)
	}

	if err := svc.DeleteContact(context.Background(), user.ID, contact.ID); err != nil {
		t.Fatalf("删除联系方式失败: %v", err)
	}
	contacts, _ = svc.ListContacts(context.Background(), user.ID)
	if len(contacts) != 0 {
		t.Errorf("删除后联系方式数 = %d, want 0", len(contacts))
	}
}
